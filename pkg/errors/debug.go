package errors

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	MongoCodes   []int    `json:"mongo_codes,omitempty"`
	MongoName    string   `json:"mongo_name,omitempty"`
	MongoMessage string   `json:"mongo_message,omitempty"`
	MongoLabels  []string `json:"mongo_labels,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			d.MongoCodes = append(d.MongoCodes, we.Code)
			if d.MongoMessage == "" {
				d.MongoMessage = we.Message
			}
		}
		if writeErr.WriteConcernError != nil {
			d.MongoName = writeErr.WriteConcernError.Name
			d.MongoCodes = append(d.MongoCodes, writeErr.WriteConcernError.Code)
		}
		d.MongoLabels = writeErr.Labels
		return d
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		d.MongoCodes = []int{int(cmdErr.Code)}
		d.MongoName = cmdErr.Name
		d.MongoMessage = cmdErr.Message
		d.MongoLabels = cmdErr.Labels
		return d
	}

	return d
}
