package config

import (
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/datastax/data-filter-apis/log"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("Naming").Return(NewDefaultNaming())
	o.On("MaxFilterValues").Return(0)
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	return o
}

func (o *ConfigMock) WithEntities(entities ...EntityConfig) *ConfigMock {
	built, err := NewEntities(entities, NewDefaultNaming())
	if err != nil {
		panic(err)
	}
	o.On("Entities").Return(built)
	return o
}

func (o *ConfigMock) Entities() []Entity {
	args := o.Called()
	return args.Get(0).([]Entity)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) MaxFilterValues() int {
	args := o.Called()
	return args.Int(0)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
