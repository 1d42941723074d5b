package enhance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"pixlift/internal/domain"
)

// Synthetic produces deterministic output handles without calling any
// external API. It keeps the pipeline fully operational in local and CI
// environments where no provider key is configured.
type Synthetic struct{}

// NewSynthetic creates the offline enhancer.
func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Enhance derives a stable output handle from the request.
func (s *Synthetic) Enhance(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.InputHandle) == "" {
		return nil, NewError(domain.ErrorKindInvalidInput, "image handle is required")
	}

	sum := sha256.Sum256([]byte(req.InputHandle + "|" + string(req.Quality) + "|" + string(req.Style)))
	seed := hex.EncodeToString(sum[:8])
	return &Result{
		OutputHandle: fmt.Sprintf("synthetic://enhanced/%s/%s.png", seed, req.JobID),
		Format:       "image/png",
		Width:        1024,
		Height:       1024,
	}, nil
}

var _ Enhancer = (*Synthetic)(nil)
