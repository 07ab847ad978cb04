package content

import (
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
)

// Stored field names.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldOwnerID      = "owner_id"
	FieldOwnerName    = "owner_name"
	FieldLocation     = "location"
	FieldTags         = "tags"
	FieldSubject      = "subject"
	FieldURL          = "url"
	FieldRatePerHour  = "rate_per_hour"
	FieldAvailability = "availability"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldStatus       = "status"
	FieldPrice        = "price"
	FieldCondition    = "condition"
)

// Payload is the create body accepted by every content endpoint. All kinds
// share one field set; keys outside it are ignored by the decoder.
type Payload struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	OwnerID      *string    `json:"owner_id"`
	OwnerName    *string    `json:"owner_name"`
	Location     *string    `json:"location"`
	Subject      *string    `json:"subject"`
	Price        *float64   `json:"price"`
	Condition    *string    `json:"condition"`
	URL          *string    `json:"url"`
	Tags         []string   `json:"tags"`
	StartTime    *Timestamp `json:"start_time"`
	EndTime      *Timestamp `json:"end_time"`
	RatePerHour  *float64   `json:"rate_per_hour"`
	Availability *string    `json:"availability"`
	Status       *string    `json:"status"`
}

// Validate requires title to be present and non-null. An empty title is
// accepted.
func (p *Payload) Validate() error {
	if p == nil || p.Title == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{FieldTitle: "is required"})
	}
	return nil
}

// Document returns only the fields supplied with non-null values.
func (p *Payload) Document() docstore.Document {
	doc := docstore.Document{}
	putString(doc, FieldTitle, p.Title)
	putString(doc, FieldDescription, p.Description)
	putString(doc, FieldOwnerID, p.OwnerID)
	putString(doc, FieldOwnerName, p.OwnerName)
	putString(doc, FieldLocation, p.Location)
	putString(doc, FieldSubject, p.Subject)
	putFloat(doc, FieldPrice, p.Price)
	putString(doc, FieldCondition, p.Condition)
	putString(doc, FieldURL, p.URL)
	if p.Tags != nil {
		doc[FieldTags] = p.Tags
	}
	putTime(doc, FieldStartTime, p.StartTime)
	putTime(doc, FieldEndTime, p.EndTime)
	putFloat(doc, FieldRatePerHour, p.RatePerHour)
	putString(doc, FieldAvailability, p.Availability)
	putString(doc, FieldStatus, p.Status)
	return doc
}

func putString(doc docstore.Document, key string, v *string) {
	if v != nil {
		doc[key] = *v
	}
}

func putFloat(doc docstore.Document, key string, v *float64) {
	if v != nil {
		doc[key] = *v
	}
}

func putTime(doc docstore.Document, key string, v *Timestamp) {
	if v != nil {
		doc[key] = v.UTC()
	}
}
