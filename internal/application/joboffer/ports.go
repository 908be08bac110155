package joboffer

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Se usa para asociar/desasociar etiquetas de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		offerRepo repository.JobOfferRepository,
		tagRepo repository.TagRepository,
	) error) error
}

// Cache almacenamiento clave/valor para las vistas públicas de vacantes.
// Get devuelve ok=false cuando la clave no existe. Add guarda solo si la clave no existe
// y devuelve false si ya había un valor.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Add(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// PDFGenerator genera el volante imprimible de una vacante publicada.
type PDFGenerator interface {
	GenerateJobOfferPDF(ctx context.Context, offer *dto.JobOfferDetailView, publicURL string) ([]byte, error)
}
