package model

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ExperienceNFT struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	ImageURL        string      `json:"image_url"`
	ProviderAddress string      `json:"provider_address"`
	EventName       string      `json:"event_name,omitempty"`
	EventCity       string      `json:"event_city,omitempty"`
	Validity        string      `json:"validity,omitempty"`
	ExperienceType  string      `json:"experience_type,omitempty"`
	Tier            string      `json:"tier,omitempty"`
	Serial          uint64      `json:"serial,omitempty"`
	Collection      string      `json:"collection,omitempty"`
	Attributes      []Attribute `json:"attributes,omitempty"`
}

func (n *ExperienceNFT) Kind() Kind       { return KindExperienceNFT }
func (n *ExperienceNFT) ObjectID() string { return n.ID }
