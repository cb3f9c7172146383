package db

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func NewSessionMock() *SessionMock {
	return &SessionMock{}
}

func (o *SessionMock) Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error) {
	args := o.Called(query, values)
	rows, _ := args.Get(0).([]map[string]interface{})
	return rows, args.Error(1)
}

func (o *SessionMock) Close() error {
	return o.Called().Error(0)
}
