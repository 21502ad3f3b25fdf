// internal/app/system/txn/txn.go

// Package txn runs multi-document mutations inside a MongoDB transaction
// when the server supports them, and falls back to plain sequential
// execution when it does not (standalone servers reject sessions and
// multi-document transactions).
//
// Cascade deletion plans and the project/owner-membership pair use Run
// so that either every row change commits or none does. The fallback
// keeps local single-node development working; it is detected per call,
// not cached, because the answer can change across reconnects.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a MongoDB transaction on db's client. If the
// server does not support sessions or transactions, fn runs once with
// the caller's context and no transaction; the downgrade is logged at
// Warn level so operators can see when atomicity is not in effect.
//
// fn must use the context it is handed for every store call, otherwise
// those calls escape the transaction.
func Run(ctx context.Context, db *mongo.Database, logger *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("transactions not supported; running without atomicity", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("transactions not supported; running without atomicity", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// sessions or multi-document transactions (e.g., a standalone mongod).
//
// It matches the known server error codes and, for drivers/proxies that
// surface plain errors, falls back to keyword matching on the message.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if ok := asCommandError(err, &cmdErr); ok {
		switch cmdErr.Code {
		case 20: // IllegalOperation: transactions require a replica set
			return true
		case 51: // not a replica set member
			return true
		case 263: // OperationNotSupportedInTransaction
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") ||
			strings.Contains(msg, "session") ||
			strings.Contains(msg, "illegal operation")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}

func asCommandError(err error, target *mongo.CommandError) bool {
	if ce, ok := err.(mongo.CommandError); ok {
		*target = ce
		return true
	}
	return false
}
