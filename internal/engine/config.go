package engine

import (
	"github.com/iamNilotpal/ignite/internal/codec"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// Config holds everything needed to open an Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger

	// Encoder serializes keys and values to and from their on-disk byte
	// representation. A nil Encoder defaults to codec.NewGobEncoder(),
	// which is what lets one store hold heterogeneous value types.
	Encoder codec.Encoder
}
