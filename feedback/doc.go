// Package feedback estimates the relevance of an item from previously
// rated items.
//
// A Corpus holds FeedbackRecords: rated items together with embeddings
// of their title and bag of words. Scoring an item compares its own two
// embeddings to the corpus with cosine similarity, averages the ratings
// of every record above the similarity threshold, keeps the larger of the
// title and bag-of-words estimates and finally discounts it by the age of
// the item:
//
//	multiplier = min(max(1 - 0.1*days, 0.7), 1.0)
//
// The lookup is a fixed nearest-neighbour average; nothing is learned.
//
// By default both query embeddings are compared to the stored title
// embeddings (CompareTitleOnly). CompareMatched compares title to title
// and bag of words to bag of words.
package feedback
