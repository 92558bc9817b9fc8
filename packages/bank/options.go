package bank

import (
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"
)

// region WithLogger ///////////////////////////////////////////////////////////////////////////////////////////////////

// WithLogger is an Option for the Bank that configures the logger that reports findings while the Bank is assembled.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Bank.
type Option func(*options)

// options is a container for all configurable parameters of a Bank.
type options struct {
	// log contains the logger of the Bank.
	log *logger.Logger
}

// newOptions returns a new options object that is derived from the defaults and overridden by the handed in options.
func newOptions(option ...Option) (new *options) {
	return (&options{
		log: zap.NewNop().Sugar(),
	}).apply(option...)
}

// apply modifies the options object by overriding the handed in options.
func (o *options) apply(options ...Option) (self *options) {
	for _, option := range options {
		option(o)
	}

	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
