package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
)

const skipToken = "/q"

// rater asks the user to rate items from 1 to 5 on a line-oriented terminal.
type rater struct {
	in  *bufio.Scanner
	out io.Writer
	now func() time.Time
}

func newRater(in io.Reader, out io.Writer, now func() time.Time) *rater {
	return &rater{in: bufio.NewScanner(in), out: out, now: now}
}

// rate shows item and reads a rating. ok is false when the user skips
// the item. io.EOF is returned when input ends.
func (r *rater) rate(item *core.Item, count, total int) (rating int, ok bool, err error) {
	fmt.Fprintln(r.out, "\n====================================")
	fmt.Fprintf(r.out, "Count: %d/%d\n", count, total)
	fmt.Fprintf(r.out, "Channel: %s\n", item.Channel)
	fmt.Fprintf(r.out, "Title: %s\n", item.Title)
	fmt.Fprintf(r.out, "Days since publication: %d\n", r.daysSince(item.PubDate))
	fmt.Fprintf(r.out, "Creators: %s\n", item.Creators)
	fmt.Fprintf(r.out, "Categories: %s\n", item.Categories)
	fmt.Fprintf(r.out, "Keywords: %s\n", item.Keywords)
	fmt.Fprintln(r.out)

	for {
		fmt.Fprintf(r.out, "Please provide a relevance feedback for the item from 1 to 5 (%s to skip): \n", skipToken)
		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return 0, false, err
			}
			return 0, false, io.EOF
		}
		answer := strings.TrimSpace(r.in.Text())
		if answer == skipToken {
			return 0, false, nil
		}
		n, err := strconv.Atoi(answer)
		switch {
		case err != nil:
			fmt.Fprintln(r.out, "Relevance feedback must be an integer between 1 and 5!")
		case n < 1 || n > 5:
			fmt.Fprintln(r.out, "Relevance feedback must be between 1 and 5!")
		default:
			return n, true, nil
		}
	}
}

func (r *rater) daysSince(pubDate string) int {
	published, ok := core.ParsePubDate(pubDate)
	if !ok {
		return 0
	}
	return feedback.DaysBetween(published, r.now())
}

// rateAll rates up to n items and returns the rated ones carrying their
// rating as relevance. Input ending early stops rating without error.
func (r *rater) rateAll(items []core.Item, n int) ([]core.Item, error) {
	if n > len(items) {
		n = len(items)
	}
	rated := make([]core.Item, 0, n)
	for i := range n {
		rating, ok, err := r.rate(&items[i], i+1, n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if ok {
			rated = append(rated, items[i].WithRelevance(float64(rating)))
		}
	}
	return rated, nil
}
