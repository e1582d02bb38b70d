package model

import (
	"strconv"
	"time"
)

type Proposal struct {
	ID             string `json:"object_id"`
	ProposalID     string `json:"proposal_id"`
	Creator        string `json:"creator"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ForVotes       uint64 `json:"for_votes"`
	AgainstVotes   uint64 `json:"against_votes"`
	EndTimestampMs uint64 `json:"end_timestamp_ms"`
	IsExecuted     bool   `json:"is_executed"`
}

func (p *Proposal) Kind() Kind       { return KindProposal }

// NewerThan orders proposals by proposal_id, numerically when both ids are
// decimal counters and lexically otherwise.
func (p *Proposal) NewerThan(q *Proposal) bool {
	a, errA := strconv.ParseUint(p.ProposalID, 10, 64)
	b, errB := strconv.ParseUint(q.ProposalID, 10, 64)
	if errA == nil && errB == nil {
		return a > b
	}
	return p.ProposalID > q.ProposalID
}
func (p *Proposal) ObjectID() string { return p.ID }

func (p *Proposal) EndTime() time.Time {
	return time.UnixMilli(int64(p.EndTimestampMs))
}

func (p *Proposal) IsVotingActive(now time.Time) bool {
	return now.Before(p.EndTime()) && !p.IsExecuted
}

// CanBeExecuted compares raw tallies only; no quorum is assumed.
func (p *Proposal) CanBeExecuted(now time.Time) bool {
	return !p.IsVotingActive(now) && !p.IsExecuted && p.ForVotes > p.AgainstVotes
}

func (p *Proposal) Approved() bool {
	return p.ForVotes > p.AgainstVotes
}

func (p *Proposal) ForPercentage() float64 {
	total := p.ForVotes + p.AgainstVotes
	if total == 0 {
		return 0
	}
	return float64(p.ForVotes) / float64(total) * 100
}

func (p *Proposal) AgainstPercentage() float64 {
	total := p.ForVotes + p.AgainstVotes
	if total == 0 {
		return 0
	}
	return float64(p.AgainstVotes) / float64(total) * 100
}
