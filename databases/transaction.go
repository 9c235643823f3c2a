package databases

//go generate: mockery --name Transactor

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a unit of work inside a multi-document transaction. The
// context handed to fn carries the session and must be used for every
// database call that belongs to the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	client ClientHelper
}

// NewTransactor returns a Transactor backed by client sessions. Transactions
// need a replica set or sharded cluster.
func NewTransactor(client ClientHelper) Transactor {
	return &mongoTransactor{client: client}
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
