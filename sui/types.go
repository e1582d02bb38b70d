package sui

import "encoding/json"

// ObjectOptions mirrors the options block of sui_getObject.
type ObjectOptions struct {
	ShowType    bool `json:"showType"`
	ShowOwner   bool `json:"showOwner"`
	ShowContent bool `json:"showContent"`
}

var contentOptions = ObjectOptions{ShowType: true, ShowOwner: true, ShowContent: true}

type ObjectResponse struct {
	Data  *ObjectData     `json:"data,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

type ObjectData struct {
	ObjectID string          `json:"objectId"`
	Version  string          `json:"version"`
	Digest   string          `json:"digest"`
	Type     string          `json:"type"`
	Owner    json.RawMessage `json:"owner,omitempty"`
	Content  *MoveContent    `json:"content,omitempty"`
}

type MoveContent struct {
	DataType string                 `json:"dataType"`
	Type     string                 `json:"type"`
	Fields   map[string]interface{} `json:"fields"`
}

// RawObject is the encoding-neutral view of a Move object handed to the
// reader: the declared struct type plus its field map.
type RawObject struct {
	ObjectID string
	Type     string
	Fields   map[string]interface{}
}

// Raw flattens a JSON-RPC response. It returns false for error responses and
// objects without Move content.
func (r ObjectResponse) Raw() (RawObject, bool) {
	if len(r.Error) > 0 && string(r.Error) != "null" {
		return RawObject{}, false
	}
	if r.Data == nil || r.Data.Content == nil || r.Data.Content.DataType != "moveObject" {
		return RawObject{}, false
	}
	t := r.Data.Content.Type
	if t == "" {
		t = r.Data.Type
	}
	return RawObject{ObjectID: r.Data.ObjectID, Type: t, Fields: r.Data.Content.Fields}, true
}

type ObjectPage struct {
	Data        []ObjectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

type EventID struct {
	TxDigest string `json:"txDigest"`
	EventSeq string `json:"eventSeq"`
}

type Event struct {
	ID          EventID                `json:"id"`
	PackageID   string                 `json:"packageId"`
	Type        string                 `json:"type"`
	Sender      string                 `json:"sender"`
	ParsedJSON  map[string]interface{} `json:"parsedJson"`
	TimestampMs string                 `json:"timestampMs,omitempty"`
}

type EventPage struct {
	Data        []Event  `json:"data"`
	NextCursor  *EventID `json:"nextCursor"`
	HasNextPage bool     `json:"hasNextPage"`
}

type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Version      string `json:"version"`
	Digest       string `json:"digest"`
	Balance      string `json:"balance"`
}

type CoinPage struct {
	Data        []Coin  `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type Balance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

type ownedQuery struct {
	Filter  map[string]string `json:"filter,omitempty"`
	Options ObjectOptions     `json:"options"`
}

type graphQLObjects struct {
	Objects struct {
		Nodes []struct {
			ObjectID     string `json:"objectId"`
			AsMoveObject *struct {
				Contents *struct {
					JSON map[string]interface{} `json:"json"`
				} `json:"contents"`
			} `json:"asMoveObject"`
		} `json:"nodes"`
		PageInfo struct {
			HasNextPage bool    `json:"hasNextPage"`
			EndCursor   *string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"objects"`
}
