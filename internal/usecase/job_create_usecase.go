package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/events"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/jdata.schema.json
var jdataSchemaJSON []byte

var jdataSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jdataSchemaJSON))
	if err != nil {
		panic("jdata schema: " + err.Error())
	}
	return s
}()

type CreateJobInput struct {
	Title       string          `json:"title" validate:"required,notblank,max=100"`
	Company     string          `json:"company" validate:"required,notblank,max=100"`
	Location    string          `json:"location" validate:"required,notblank,max=255"`
	JobType     string          `json:"job_type" validate:"required,oneof=hybrid remote office full-time"`
	Description string          `json:"description" validate:"required,notblank"`
	Salary      *float64        `json:"salary" validate:"omitempty,gte=0,lte=99999999.99"`
	Currency    string          `json:"currency" validate:"required,oneof=KZT USD EUR"`
	JData       json.RawMessage `json:"jdata" validate:"-"`
	Logo        *Upload         `json:"-" validate:"-"`
}

type JobEventPublisher interface {
	PublishJobCreated(ctx context.Context, e events.JobCreated) error
}

type JobNotifier interface {
	NotifyJobCreated(j job.Job)
}

type JobCreateUsecase interface {
	CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error)
}

type JobCreate struct {
	jobs      repository.JobRepository
	files     FileStore
	cache     ListingCache
	publisher JobEventPublisher
	notifier  JobNotifier
	maxUpload int64
	logger    *log.Logger
}

func NewJobCreateUsecase(jobs repository.JobRepository, files FileStore, cache ListingCache, publisher JobEventPublisher, notifier JobNotifier, maxUpload int64, logger *log.Logger) *JobCreate {
	return &JobCreate{
		jobs:      jobs,
		files:     files,
		cache:     cache,
		publisher: publisher,
		notifier:  notifier,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (u *JobCreate) CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)

	fe := validation.Struct(in)
	if fe == nil {
		fe = validation.FieldErrors{}
	}
	if in.Salary != nil && !hasAtMostTwoDecimals(*in.Salary) && len(fe["salary"]) == 0 {
		fe.Add("salary", "Ensure that there are no more than 2 decimal places.")
	}
	meta, metaErrs := validateJData(in.JData)
	for _, m := range metaErrs {
		fe.Add("jdata", m)
	}
	if in.Logo != nil {
		if err := checkUpload(in.Logo, u.maxUpload); err != nil {
			if errors.Is(err, ErrFileTooLarge) {
				fe.Add("logo", "The submitted file is too large.")
			}
		} else if !in.Logo.isImage() {
			fe.Add("logo", "Upload a valid image.")
		}
	}
	if !fe.Empty() {
		return job.Job{}, newValidationError(fe)
	}

	j := job.Job{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Type:        job.Type(in.JobType),
		Description: in.Description,
		Salary:      in.Salary,
		Currency:    job.Currency(in.Currency),
		Metadata:    meta,
	}

	var logoKey string
	if in.Logo != nil && in.Logo.Body != nil {
		if u.files == nil {
			return job.Job{}, ErrInternal
		}
		logoKey = objectKey("job_logos", in.Logo.Filename)
		if err := u.files.Put(ctx, logoKey, in.Logo.ContentType, in.Logo.Body, in.Logo.Size); err != nil {
			u.logf("[Jobs] logo upload failed key=%s err=%v", logoKey, err)
			return job.Job{}, ErrInternal
		}
		j.Logo = &logoKey
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.logf("[Jobs] create failed: %v", err)
		if logoKey != "" {
			if rmErr := u.files.Remove(context.WithoutCancel(ctx), logoKey); rmErr != nil {
				u.logf("[Jobs] orphan logo cleanup failed key=%s err=%v", logoKey, rmErr)
			}
		}
		return job.Job{}, ErrInternal
	}

	u.afterCreate(ctx, created)
	return created, nil
}

// afterCreate runs the side effects of a new job. None of them fail the request.
func (u *JobCreate) afterCreate(ctx context.Context, j job.Job) {
	ctx = context.WithoutCancel(ctx)

	if u.cache != nil {
		if _, err := u.cache.BumpGeneration(ctx, jobsListGenKey); err != nil {
			u.logf("[Jobs] cache generation bump failed: %v", err)
		}
		if err := u.cache.DeleteByPattern(ctx, jobsListPattern); err != nil {
			u.logf("[Jobs] cache invalidation failed: %v", err)
		}
	}
	if u.publisher != nil {
		evt := events.JobCreated{
			Type:      events.TypeJobCreated,
			JobID:     j.ID,
			Title:     j.Title,
			Company:   j.Company,
			JobType:   string(j.Type),
			Timestamp: j.CreatedAt.UTC(),
		}
		if evt.Timestamp.IsZero() {
			evt.Timestamp = time.Now().UTC()
		}
		if err := u.publisher.PublishJobCreated(ctx, evt); err != nil {
			u.logf("[Jobs] publish job.created failed job_id=%d err=%v", j.ID, err)
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyJobCreated(j)
	}
}

func (u *JobCreate) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

// validateJData returns the normalized document (nil for absent or null).
func validateJData(raw json.RawMessage) (json.RawMessage, []string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, []string{"Value must be valid JSON."}
	}

	res, err := jdataSchema.Validate(gojsonschema.NewBytesLoader(trimmed))
	if err != nil {
		return nil, []string{"Value must be valid JSON."}
	}
	if res.Valid() {
		return json.RawMessage(trimmed), nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.Description())
	}
	return nil, msgs
}

func hasAtMostTwoDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
