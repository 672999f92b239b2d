package blob

import (
	"fmt"

	"github.com/arloliu/numbench/compress"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/internal/options"
	"github.com/arloliu/numbench/predictor"
)

type encoderConfig struct {
	variant         format.Variant
	codec           format.PayloadCodec
	zstdLevel       int
	order           int
	trainingSamples int
}

func defaultEncoderConfig() *encoderConfig {
	return &encoderConfig{
		variant:         format.VariantPlain,
		codec:           format.PayloadANS,
		zstdLevel:       compress.DefaultZstdLevel,
		order:           predictor.DefaultOrder,
		trainingSamples: predictor.DefaultTrainingSamples,
	}
}

// Option configures the container encoder.
type Option = options.Option[*encoderConfig]

// WithVariant selects the transform variant applied before payload coding.
func WithVariant(variant format.Variant) Option {
	return options.New(func(cfg *encoderConfig) error {
		if !variant.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, uint8(variant))
		}
		cfg.variant = variant

		return nil
	})
}

// WithPayloadCodec selects how the transformed signal is coded: the rANS
// entropy coder or one of the general-purpose codecs.
func WithPayloadCodec(codec format.PayloadCodec) Option {
	return options.New(func(cfg *encoderConfig) error {
		if !codec.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPayloadCodec, uint8(codec))
		}
		cfg.codec = codec

		return nil
	})
}

// WithZstdLevel sets the Zstd compression level. It only has an effect when
// the payload codec is PayloadZstd.
func WithZstdLevel(level int) Option {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.zstdLevel = level
	})
}

// WithPredictorOrder sets the linear predictor order used by the predictive
// and sparse variants.
func WithPredictorOrder(order int) Option {
	return options.New(func(cfg *encoderConfig) error {
		if order < 1 {
			return fmt.Errorf("predictor order must be positive, got %d", order)
		}
		cfg.order = order

		return nil
	})
}

// WithTrainingSamples caps the number of samples used to fit the predictor
// coefficients.
func WithTrainingSamples(n int) Option {
	return options.New(func(cfg *encoderConfig) error {
		if n < 1 {
			return fmt.Errorf("training samples must be positive, got %d", n)
		}
		cfg.trainingSamples = n

		return nil
	})
}
