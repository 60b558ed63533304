package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
)

const exportURLTTL = time.Hour

var (
	ErrInvalidPeriod     = domain.NewRuleError("meta.invalid_period")
	ErrExportUnavailable = domain.NewRuleError("meta.export_unavailable")
)

// ObjectStore is the part of *minio.Client used for report exports.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Service interface {
	// EmpleadoDestacado ranks reporteros by closed noticias with an arrival
	// inside the month. Zero anio or mes selects the current month.
	EmpleadoDestacado(ctx context.Context, anio, mes int) (*domain.EmpleadoDestacado, error)
	SetMinimo(ctx context.Context, actor domain.Actor, input domain.SetMinimoInput) (*domain.MetaMensual, error)
	Export(ctx context.Context, anio, mes int) (*domain.ReportExport, error)
}

type service struct {
	metaRepo repository.MetaRepository
	store    ObjectStore
	bucket   string
	loc      *time.Location
	now      func() time.Time
}

// NewService accepts a nil store; exports then report
// meta.export_unavailable.
func NewService(metaRepo repository.MetaRepository, store ObjectStore, bucket string, loc *time.Location) Service {
	return &service{
		metaRepo: metaRepo,
		store:    store,
		bucket:   bucket,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *service) period(anio, mes int) (int, int, error) {
	if anio == 0 || mes == 0 {
		now := s.now().In(s.loc)
		if anio == 0 {
			anio = now.Year()
		}
		if mes == 0 {
			mes = int(now.Month())
		}
	}
	if anio < 2000 || anio > 3000 || mes < 1 || mes > 12 {
		return 0, 0, ErrInvalidPeriod
	}
	return anio, mes, nil
}

func (s *service) EmpleadoDestacado(ctx context.Context, anio, mes int) (*domain.EmpleadoDestacado, error) {
	anio, mes, err := s.period(anio, mes)
	if err != nil {
		return nil, err
	}

	minimo := domain.DefaultMinimoMensual
	meta, err := s.metaRepo.GetMinimo(ctx, anio, mes)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		minimo = meta.Minimo
	}

	from := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	totals, err := s.metaRepo.RankReporteros(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []domain.ReporteroTotal{}
	}

	return &domain.EmpleadoDestacado{
		Anio:       anio,
		Mes:        mes,
		Minimo:     minimo,
		Reporteros: totals,
	}, nil
}

func (s *service) SetMinimo(ctx context.Context, actor domain.Actor, input domain.SetMinimoInput) (*domain.MetaMensual, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	updatedBy := actor.ID
	meta := &domain.MetaMensual{
		Anio:      input.Anio,
		Mes:       input.Mes,
		Minimo:    input.Minimo,
		UpdatedBy: &updatedBy,
	}
	if err := s.metaRepo.UpsertMinimo(ctx, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *service) Export(ctx context.Context, anio, mes int) (*domain.ReportExport, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	report, err := s.EmpleadoDestacado(ctx, anio, mes)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("reportes/empleado-destacado/%04d-%02d/%s.json", report.Anio, report.Mes, uuid.New().String())
	_, err = s.store.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	presigned, err := s.store.PresignedGetObject(ctx, s.bucket, objectKey, exportURLTTL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to presign report: %w", err)
	}

	return &domain.ReportExport{
		ObjectKey: objectKey,
		URL:       presigned.String(),
		ExpiresAt: s.now().Add(exportURLTTL),
	}, nil
}
