package handler

import (
	"net/http"
	"strconv"

	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/journal"
	"tokentrip-marketplace/response"
)

const defaultSubmissionLimit = 20

// Submissions lists the connected wallet's journaled submissions.
func Submissions(j journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, ok := wallet(ctx, w); !ok {
			return
		}
		limit := defaultSubmissionLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				response.InvalidData("limit must be a positive integer").Send(ctx, w)
				return
			}
			limit = n
		}
		es, err := j.Recent(ctx, c.Wallet(ctx), limit)
		if es == nil {
			es = []journal.Entry{}
		}
		respond(ctx, w, "submissions", es, err)
	}
}
