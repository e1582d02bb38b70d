// Package sui talks to a Sui full node over JSON-RPC and to the Sui GraphQL
// indexer.
package sui

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/machinebox/graphql"

	"tokentrip-marketplace/logger"
)

const objectsByTypeQuery = `
query getObjects($type: String!, $after: String) {
  objects(filter: { type: $type }, after: $after) {
    nodes {
      objectId: address
      asMoveObject { contents { json } }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

type Client interface {
	GetObject(ctx context.Context, id string) (*ObjectResponse, error)
	MultiGetObjects(ctx context.Context, ids []string) ([]ObjectResponse, error)
	GetOwnedObjects(ctx context.Context, owner, structType string, cursor *string, limit int) (*ObjectPage, error)
	QueryEvents(ctx context.Context, eventType string, cursor *EventID, limit int, descending bool) (*EventPage, error)
	GetCoins(ctx context.Context, owner, coinType string, cursor *string) (*CoinPage, error)
	GetBalance(ctx context.Context, owner, coinType string) (*Balance, error)
	ObjectsByType(ctx context.Context, structType string) ([]RawObject, error)
}

type client struct {
	rpc *rpc.Client
	gql *graphql.Client
}

func Dial(ctx context.Context, rpcURL, graphQLURL string) (Client, error) {
	c, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial: error connecting to sui node: %w", err)
	}
	return &client{rpc: c, gql: graphql.NewClient(graphQLURL)}, nil
}

func (c *client) GetObject(ctx context.Context, id string) (*ObjectResponse, error) {
	var resp ObjectResponse
	if err := c.rpc.CallContext(ctx, &resp, "sui_getObject", id, contentOptions); err != nil {
		return nil, fmt.Errorf("getObject: error fetching %s: %w", id, err)
	}
	return &resp, nil
}

func (c *client) MultiGetObjects(ctx context.Context, ids []string) ([]ObjectResponse, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var resp []ObjectResponse
	if err := c.rpc.CallContext(ctx, &resp, "sui_multiGetObjects", ids, contentOptions); err != nil {
		return nil, fmt.Errorf("multiGetObjects: error fetching %d objects: %w", len(ids), err)
	}
	return resp, nil
}

func (c *client) GetOwnedObjects(ctx context.Context, owner, structType string, cursor *string, limit int) (*ObjectPage, error) {
	q := ownedQuery{Options: contentOptions}
	if structType != "" {
		q.Filter = map[string]string{"StructType": structType}
	}
	var resp ObjectPage
	if err := c.rpc.CallContext(ctx, &resp, "suix_getOwnedObjects", owner, q, cursor, limit); err != nil {
		return nil, fmt.Errorf("getOwnedObjects: error fetching objects of %s: %w", owner, err)
	}
	return &resp, nil
}

func (c *client) QueryEvents(ctx context.Context, eventType string, cursor *EventID, limit int, descending bool) (*EventPage, error) {
	filter := map[string]string{"MoveEventType": eventType}
	var resp EventPage
	if err := c.rpc.CallContext(ctx, &resp, "suix_queryEvents", filter, cursor, limit, descending); err != nil {
		return nil, fmt.Errorf("queryEvents: error querying %s: %w", eventType, err)
	}
	return &resp, nil
}

func (c *client) GetCoins(ctx context.Context, owner, coinType string, cursor *string) (*CoinPage, error) {
	var resp CoinPage
	if err := c.rpc.CallContext(ctx, &resp, "suix_getCoins", owner, coinType, cursor, nil); err != nil {
		return nil, fmt.Errorf("getCoins: error fetching %s coins of %s: %w", coinType, owner, err)
	}
	return &resp, nil
}

func (c *client) GetBalance(ctx context.Context, owner, coinType string) (*Balance, error) {
	var resp Balance
	if err := c.rpc.CallContext(ctx, &resp, "suix_getBalance", owner, coinType); err != nil {
		return nil, fmt.Errorf("getBalance: error fetching %s balance of %s: %w", coinType, owner, err)
	}
	return &resp, nil
}

// ObjectsByType walks every page of the indexer's objects query.
func (c *client) ObjectsByType(ctx context.Context, structType string) ([]RawObject, error) {
	var out []RawObject
	var after *string
	for {
		req := graphql.NewRequest(objectsByTypeQuery)
		req.Var("type", structType)
		if after != nil {
			req.Var("after", *after)
		}

		var resp graphQLObjects
		if err := c.gql.Run(ctx, req, &resp); err != nil {
			return nil, fmt.Errorf("objectsByType: error querying %s: %w", structType, err)
		}

		for _, n := range resp.Objects.Nodes {
			if n.AsMoveObject == nil || n.AsMoveObject.Contents == nil {
				continue
			}
			out = append(out, RawObject{ObjectID: n.ObjectID, Type: structType, Fields: n.AsMoveObject.Contents.JSON})
		}

		if !resp.Objects.PageInfo.HasNextPage || resp.Objects.PageInfo.EndCursor == nil {
			break
		}
		after = resp.Objects.PageInfo.EndCursor
	}
	logger.Debugf(ctx, "objectsByType: %d objects of %s", len(out), structType)
	return out, nil
}

// AllCoins pages through every coin of coinType owned by owner.
func AllCoins(ctx context.Context, c Client, owner, coinType string) ([]Coin, error) {
	var out []Coin
	var cursor *string
	for {
		page, err := c.GetCoins(ctx, owner, coinType, cursor)
		if err != nil {
			return nil, fmt.Errorf("allCoins: %w", err)
		}
		out = append(out, page.Data...)
		if !page.HasNextPage || page.NextCursor == nil {
			return out, nil
		}
		cursor = page.NextCursor
	}
}
