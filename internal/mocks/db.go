package mocks

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// fakeDriver is a database/sql driver whose connections support only
// transaction control. Statements fail; stores under test are expected
// to be in-memory fakes that ignore the *sql.Tx handed to WithTx.
type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) {
	return &fakeConn{}, nil
}

type fakeConn struct{}

func (*fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("fake connection does not support statements")
}

func (*fakeConn) Close() error { return nil }

func (*fakeConn) Begin() (driver.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

var (
	registerOnce sync.Once
	openCount    atomic.Int64
)

// NewFakeDB returns a *sql.DB backed by the no-op driver. BeginTx,
// Commit, and Rollback all succeed, which is enough to drive
// transaction-wrapped service code in tests.
func NewFakeDB() *sql.DB {
	registerOnce.Do(func() {
		sql.Register("fakedb", fakeDriver{})
	})

	// Distinct DSNs keep connection pools independent between tests.
	db, err := sql.Open("fakedb", fmt.Sprintf("fake-%d", openCount.Add(1)))
	if err != nil {
		panic(err) // cannot happen: the driver is registered above
	}
	return db
}
