// Package suitest provides an in-memory sui.Client for tests.
package suitest

import (
	"context"
	"strconv"
	"sync"

	"tokentrip-marketplace/sui"
)

type Fake struct {
	mu       sync.Mutex
	objects  map[string]sui.ObjectResponse
	order    []string
	owned    map[string][]string
	events   map[string][]sui.Event
	coins    map[string][]sui.Coin
	PageSize int
	Err      error
	calls    map[string]int
}

func NewFake() *Fake {
	return &Fake{
		objects:  map[string]sui.ObjectResponse{},
		owned:    map[string][]string{},
		events:   map[string][]sui.Event{},
		coins:    map[string][]sui.Coin{},
		PageSize: 2,
		calls:    map[string]int{},
	}
}

// Put stores a Move object in the JSON-RPC content encoding.
func (f *Fake) Put(id, structType string, fields map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[id]; !ok {
		f.order = append(f.order, id)
	}
	f.objects[id] = sui.ObjectResponse{Data: &sui.ObjectData{
		ObjectID: id,
		Type:     structType,
		Content:  &sui.MoveContent{DataType: "moveObject", Type: structType, Fields: fields},
	}}
}

func (f *Fake) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[id] = sui.ObjectResponse{Error: []byte(`{"code":"deleted"}`)}
}

func (f *Fake) Own(owner string, ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owned[owner] = append(f.owned[owner], ids...)
}

func (f *Fake) Emit(eventType string, payload map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seq := len(f.events[eventType])
	f.events[eventType] = append(f.events[eventType], sui.Event{
		ID:         sui.EventID{TxDigest: "tx" + strconv.Itoa(seq), EventSeq: strconv.Itoa(seq)},
		Type:       eventType,
		ParsedJSON: payload,
	})
}

func (f *Fake) AddCoin(owner, coinType, id string, balance uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := owner + "|" + coinType
	f.coins[key] = append(f.coins[key], sui.Coin{CoinType: coinType, CoinObjectID: id, Balance: strconv.FormatUint(balance, 10)})
}

// Calls reports how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *Fake) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.Err
}

func (f *Fake) GetObject(ctx context.Context, id string) (*sui.ObjectResponse, error) {
	if err := f.enter("sui_getObject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objects[id]
	if !ok {
		return &sui.ObjectResponse{Error: []byte(`{"code":"notExists"}`)}, nil
	}
	return &o, nil
}

func (f *Fake) MultiGetObjects(ctx context.Context, ids []string) ([]sui.ObjectResponse, error) {
	if err := f.enter("sui_multiGetObjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sui.ObjectResponse, 0, len(ids))
	for _, id := range ids {
		o, ok := f.objects[id]
		if !ok {
			o = sui.ObjectResponse{Error: []byte(`{"code":"notExists"}`)}
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *Fake) GetOwnedObjects(ctx context.Context, owner, structType string, cursor *string, limit int) (*sui.ObjectPage, error) {
	if err := f.enter("suix_getOwnedObjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []sui.ObjectResponse
	for _, id := range f.owned[owner] {
		o, ok := f.objects[id]
		if !ok || o.Data == nil {
			continue
		}
		if structType != "" && o.Data.Type != structType {
			continue
		}
		all = append(all, o)
	}
	start := 0
	if cursor != nil {
		start, _ = strconv.Atoi(*cursor)
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	page := &sui.ObjectPage{Data: all[start:end]}
	if end < len(all) {
		next := strconv.Itoa(end)
		page.NextCursor = &next
		page.HasNextPage = true
	}
	return page, nil
}

func (f *Fake) QueryEvents(ctx context.Context, eventType string, cursor *sui.EventID, limit int, descending bool) (*sui.EventPage, error) {
	if err := f.enter("suix_queryEvents"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.events[eventType]
	start := 0
	if cursor != nil {
		n, _ := strconv.Atoi(cursor.EventSeq)
		start = n + 1
	}
	size := f.PageSize
	if limit > 0 && limit < size {
		size = limit
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	if start > end {
		start = end
	}
	page := &sui.EventPage{Data: all[start:end]}
	if end < len(all) {
		last := all[end-1].ID
		page.NextCursor = &last
		page.HasNextPage = true
	}
	return page, nil
}

func (f *Fake) GetCoins(ctx context.Context, owner, coinType string, cursor *string) (*sui.CoinPage, error) {
	if err := f.enter("suix_getCoins"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sui.CoinPage{Data: append([]sui.Coin(nil), f.coins[owner+"|"+coinType]...)}, nil
}

func (f *Fake) GetBalance(ctx context.Context, owner, coinType string) (*sui.Balance, error) {
	if err := f.enter("suix_getBalance"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var total uint64
	coins := f.coins[owner+"|"+coinType]
	for _, c := range coins {
		b, _ := strconv.ParseUint(c.Balance, 10, 64)
		total += b
	}
	return &sui.Balance{CoinType: coinType, CoinObjectCount: len(coins), TotalBalance: strconv.FormatUint(total, 10)}, nil
}

// ObjectsByType returns stored objects of structType in insertion order.
func (f *Fake) ObjectsByType(ctx context.Context, structType string) ([]sui.RawObject, error) {
	if err := f.enter("graphql_objects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sui.RawObject
	for _, id := range f.order {
		raw, ok := f.objects[id].Raw()
		if !ok || raw.Type != structType {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}
