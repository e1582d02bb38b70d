package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokentrip-marketplace/governance"
	"tokentrip-marketplace/txbuilder"
)

func Proposals(service *governance.Governance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ps, err := service.Proposals(ctx)
		respond(ctx, w, "proposals", ps, err)
	}
}

func Proposal(service *governance.Governance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		p, err := service.Proposal(ctx, mux.Vars(r)["id"])
		respond(ctx, w, "proposal", p, err)
	}
}

func CreateProposal(service *governance.Governance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req txbuilder.CreateProposal
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Create(ctx, addr, req)
		submitted(ctx, w, "createProposal", out, err)
	}
}

func Vote(service *governance.Governance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req governance.VoteRequest
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Vote(ctx, addr, mux.Vars(r)["id"], req.Support)
		submitted(ctx, w, "vote", out, err)
	}
}

func ExecuteProposal(service *governance.Governance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		out, err := service.Execute(ctx, addr, mux.Vars(r)["id"])
		submitted(ctx, w, "executeProposal", out, err)
	}
}
