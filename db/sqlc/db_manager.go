package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the query layer behind the managers the api uses.
type DbManager struct {
	Querier   Querier
	Analytics *AnalyticsManager
}

func NewDbManager(db DBTX) DbManager {
	queries := New(db)
	return DbManager{
		Querier:   queries,
		Analytics: NewAnalyticsManager(queries),
	}
}
