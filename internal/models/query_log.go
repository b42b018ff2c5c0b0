package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryLog records one translate-and-run pipeline run for auditing.
type QueryLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID       string             `bson:"request_id" json:"request_id"`
	NaturalLanguage string             `bson:"natural_language" json:"natural_language"`
	StructuredQuery string             `bson:"structured_query" json:"structured_query"`
	Interpretation  string             `bson:"interpretation" json:"interpretation"`
	UsedFallback    bool               `bson:"used_fallback" json:"used_fallback"`
	Succeeded       bool               `bson:"succeeded" json:"succeeded"`
	Error           string             `bson:"error,omitempty" json:"error,omitempty"`
	ExecutionTimeMs int64              `bson:"execution_time_ms" json:"execution_time_ms"`
	Base            `bson:",inline"`
}

func NewQueryLog(requestID, naturalLanguage string) *QueryLog {
	return &QueryLog{
		RequestID:       requestID,
		NaturalLanguage: naturalLanguage,
		Base:            NewBase(),
	}
}
