package handler

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	list       usecase.JobListUsecase
	create     usecase.JobCreateUsecase
	serializer dto.JobSerializer
}

func NewJobsHandler(list usecase.JobListUsecase, create usecase.JobCreateUsecase, serializer dto.JobSerializer) *JobsHandler {
	return &JobsHandler{list: list, create: create, serializer: serializer}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListAll)
	r.Get("/jobsf", h.ListFiltered)
	r.Post("/jobs/create", h.Create)
}

func (h *JobsHandler) ListAll(c fiber.Ctx) error {
	items, err := h.list.ListAll(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.serializer.Jobs(c.Context(), items))
}

func (h *JobsHandler) ListFiltered(c fiber.Ctx) error {
	fe := validation.FieldErrors{}

	search := c.Query("search")
	title := c.Query("title")
	if title == "" {
		title = c.Query("name")
	}

	salary, err := dto.ParseDecimal(c.Query("salary"))
	if err != nil {
		fe.Add("salary", dto.NotANumberMessage)
	}
	minSalary, err := dto.ParseDecimal(c.Query("min_salary"))
	if err != nil {
		fe.Add("min_salary", dto.NotANumberMessage)
	}
	page, err := queryInt(c, "page")
	if err != nil {
		fe.Add("page", "A valid integer is required.")
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		fe.Add("page_size", "A valid integer is required.")
	}
	if !fe.Empty() {
		return fieldErrors(fe)
	}

	var jobTypes []string
	for _, v := range c.RequestCtx().QueryArgs().PeekMulti("job_type") {
		jobTypes = append(jobTypes, string(v))
	}

	out, err := h.list.ListJobs(c.Context(), usecase.JobListParams{
		Search:      search,
		Title:       title,
		JobTypes:    jobTypes,
		Location:    c.Query("location"),
		Salary:      salary,
		Currency:    c.Query("currency"),
		MinSalary:   minSalary,
		PublishTime: c.Query("publish_time"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	resp := dto.JobListResponse{
		Count:    out.Count,
		Page:     out.Page,
		PageSize: out.PageSize,
		Results:  h.serializer.Jobs(c.Context(), out.Items),
	}
	if out.HasNext {
		resp.Next = pageURL(c, out.Page+1)
	}
	if out.HasPrevious {
		resp.Previous = pageURL(c, out.Page-1)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, resp)
}

// createJobRequest is the JSON form of a job. Multipart requests carry the
// same fields as form values.
type createJobRequest struct {
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	JobType     string          `json:"job_type"`
	Description string          `json:"description"`
	Salary      dto.Decimal     `json:"salary"`
	Currency    string          `json:"currency"`
	JData       json.RawMessage `json:"jdata"`
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	in, closeFile, err := decodeCreateJob(c)
	if err != nil {
		return err
	}
	defer closeFile()

	j, err := h.create.CreateJob(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Job created successfully", h.serializer.Job(c.Context(), j))
}

func decodeCreateJob(c fiber.Ctx) (usecase.CreateJobInput, func(), error) {
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return decodeCreateJobForm(c)
	}

	var req createJobRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		if errors.Is(err, dto.ErrNotANumber) {
			return usecase.CreateJobInput{}, noClose, fieldErrors(validation.FieldErrors{"salary": {dto.NotANumberMessage}})
		}
		return usecase.CreateJobInput{}, noClose, badFormat(err)
	}
	return usecase.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		JobType:     req.JobType,
		Description: req.Description,
		Salary:      req.Salary.Value,
		Currency:    req.Currency,
		JData:       req.JData,
	}, noClose, nil
}

func decodeCreateJobForm(c fiber.Ctx) (usecase.CreateJobInput, func(), error) {
	in := usecase.CreateJobInput{
		Title:       c.FormValue("title"),
		Company:     c.FormValue("company"),
		Location:    c.FormValue("location"),
		JobType:     c.FormValue("job_type"),
		Description: c.FormValue("description"),
		Currency:    c.FormValue("currency"),
	}

	salary, err := dto.ParseDecimal(c.FormValue("salary"))
	if err != nil {
		return in, noClose, fieldErrors(validation.FieldErrors{"salary": {dto.NotANumberMessage}})
	}
	in.Salary = salary

	if raw := strings.TrimSpace(c.FormValue("jdata")); raw != "" {
		if !json.Valid([]byte(raw)) {
			return in, noClose, fieldErrors(validation.FieldErrors{"jdata": {"Value must be valid JSON."}})
		}
		in.JData = json.RawMessage(raw)
	}

	logo, closeFile, err := formUpload(c, "logo")
	if err != nil {
		return in, noClose, err
	}
	in.Logo = logo
	return in, closeFile, nil
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// pageURL rebuilds the request URL with page replaced.
func pageURL(c fiber.Ctx, page int) *string {
	q, err := url.ParseQuery(string(c.RequestCtx().QueryArgs().QueryString()))
	if err != nil {
		q = url.Values{}
	}
	q.Set("page", strconv.Itoa(page))
	u := c.BaseURL() + c.Path() + "?" + q.Encode()
	return &u
}
