// Package reembed recomputes the embeddings of a stored feedback corpus.
//
// Switching embedding models invalidates every stored vector: scores
// would compare vectors from two different spaces. A Reembedder walks
// the feedback repository in ID order, embeds the title and bag of words
// of each batch in one call, optionally scales the vectors to unit length
// and writes them back. Embedder calls are retried with exponential
// backoff. After every batch the last processed ID is saved as a
// checkpoint, so an interrupted run resumes where it stopped.
package reembed
