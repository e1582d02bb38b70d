package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokentrip-marketplace/staking"
)

func StakingPool(service *staking.Staking) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		p, err := service.Pool(ctx)
		respond(ctx, w, "stakingPool", p, err)
	}
}

// StakingOverview takes the amount being considered as ?amount= to
// estimate returns.
func StakingOverview(service *staking.Staking) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		o, err := service.Overview(ctx, mux.Vars(r)["owner"], r.URL.Query().Get("amount"))
		respond(ctx, w, "stakingOverview", o, err)
	}
}

func Stake(service *staking.Staking) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		var req staking.StakeRequest
		if !decode(ctx, w, r, &req) {
			return
		}
		out, err := service.Stake(ctx, addr, req.Amount)
		submitted(ctx, w, "stake", out, err)
	}
}

func ClaimRewards(service *staking.Staking) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		addr, ok := wallet(ctx, w)
		if !ok {
			return
		}
		out, err := service.Claim(ctx, addr, mux.Vars(r)["id"])
		submitted(ctx, w, "claimRewards", out, err)
	}
}
