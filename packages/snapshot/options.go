package snapshot

import (
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"

	"github.com/iotaledger/banksnapshot/packages/app/metrics"
	"github.com/iotaledger/banksnapshot/packages/bank"
)

// Constructor creates a live Bank from the Fields that were decoded from a snapshot.
type Constructor func(fields *bank.Fields) (*bank.Bank, error)

// region WithLogger ///////////////////////////////////////////////////////////////////////////////////////////////////

// WithLogger is an Option for the Encoder and the Decoder that configures the logger that is used to report their
// progress.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithMetrics //////////////////////////////////////////////////////////////////////////////////////////////////

// WithMetrics is an Option for the Encoder and the Decoder that configures the collectors that the outcome of every
// operation is recorded in.
func WithMetrics(codecMetrics *metrics.Codec) Option {
	return func(options *options) {
		options.metrics = codecMetrics
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithConstructor //////////////////////////////////////////////////////////////////////////////////////////////

// WithConstructor is an Option for the Decoder that replaces the function that turns the decoded Fields into a live
// Bank (the default is bank.New).
func WithConstructor(constructor Constructor) Option {
	return func(options *options) {
		options.constructor = constructor
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructors of the Encoder
// and the Decoder.
type Option func(*options)

// options is a container for all configurable parameters of the Encoder and the Decoder.
type options struct {
	// log contains the logger that reports the progress of the codec.
	log *logger.Logger
	// metrics contains the collectors that record the outcome of every operation (nil disables them).
	metrics *metrics.Codec
	// constructor contains the function that creates a Bank from decoded Fields (nil selects bank.New).
	constructor Constructor
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
