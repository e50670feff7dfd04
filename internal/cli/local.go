package cli

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/mathd/internal/domain/service"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/config"
	mathProvider "github.com/GriffinCanCode/mathd/internal/providers/math"
)

// localRegistry builds the catalog in-process with the configured limits
func localRegistry(configPath string) (*service.Registry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	provider, err := mathProvider.NewProvider(mathProvider.WithFactorialLimit(cfg.Math.FactorialLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to build math catalog: %w", err)
	}
	return service.NewRegistry(nil, nil, provider)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
