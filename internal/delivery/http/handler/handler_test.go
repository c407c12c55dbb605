package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/profile"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeAuth struct {
	pair jwt.Pair
	err  error
}

func (f *fakeAuth) Register(context.Context, ucauth.RegisterInput) (jwt.Pair, error) { return f.pair, f.err }
func (f *fakeAuth) Login(context.Context, ucauth.LoginInput) (jwt.Pair, error)       { return f.pair, f.err }
func (f *fakeAuth) Refresh(context.Context, string) (jwt.Pair, error)                { return f.pair, f.err }

type fakeJobList struct {
	page usecase.JobListPage
	err  error
	last usecase.JobListParams
}

func (f *fakeJobList) ListJobs(_ context.Context, p usecase.JobListParams) (usecase.JobListPage, error) {
	f.last = p
	return f.page, f.err
}

func (f *fakeJobList) ListAll(context.Context) ([]job.Job, error) { return f.page.Items, f.err }

type fakeJobCreate struct {
	in   usecase.CreateJobInput
	logo []byte
	err  error
}

func (f *fakeJobCreate) CreateJob(_ context.Context, in usecase.CreateJobInput) (job.Job, error) {
	f.in = in
	if in.Logo != nil {
		f.logo, _ = io.ReadAll(in.Logo.Body)
	}
	if f.err != nil {
		return job.Job{}, f.err
	}
	return job.Job{ID: 9, Title: in.Title, Salary: in.Salary, CreatedAt: time.Now()}, nil
}

type fakeSaved struct {
	created bool
	err     error
}

func (f *fakeSaved) Save(context.Context, uuid.UUID, int64) (bool, error) { return f.created, f.err }
func (f *fakeSaved) List(context.Context, uuid.UUID) ([]job.Saved, error) { return nil, f.err }
func (f *fakeSaved) Remove(context.Context, uuid.UUID, int64) error       { return f.err }

type fakeRecent struct{ err error }

func (f *fakeRecent) Record(context.Context, uuid.UUID, int64) error        { return f.err }
func (f *fakeRecent) List(context.Context, uuid.UUID) ([]job.Viewed, error) { return nil, f.err }

type fakeProfile struct {
	usecase.ProfileUsecase

	workResult usecase.ReconcileResult[profile.WorkExperience]
	err        error
	lastBatch  usecase.WorkExperienceBatch
}

func (f *fakeProfile) ReconcileWorkExperiences(_ context.Context, _ uuid.UUID, in usecase.WorkExperienceBatch) (usecase.ReconcileResult[profile.WorkExperience], error) {
	f.lastBatch = in
	return f.workResult, f.err
}

func (f *fakeProfile) UploadResume(context.Context, uuid.UUID, *usecase.Upload) (string, error) {
	return "resumes/x.pdf", f.err
}

type testEnv struct {
	app     *fiber.App
	jwt     *jwt.HMACService
	auth    *fakeAuth
	list    *fakeJobList
	create  *fakeJobCreate
	saved   *fakeSaved
	profile *fakeProfile
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		jwt:     jwt.NewHMACService("a-secret", "r-secret", time.Minute, time.Hour),
		auth:    &fakeAuth{},
		list:    &fakeJobList{},
		create:  &fakeJobCreate{},
		saved:   &fakeSaved{},
		profile: &fakeProfile{},
	}

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	jobs := dto.JobSerializer{}
	NewAuthHandler(env.auth).RegisterRoutes(app)
	NewJobsHandler(env.list, env.create, jobs).RegisterRoutes(app)

	protected := app.Group("", middleware.NewAuthMiddleware(env.jwt).Middleware())
	NewSavedJobsHandler(env.saved, &fakeRecent{}, jobs).RegisterRoutes(protected)
	NewProfileHandler(env.profile, dto.ProfileSerializer{}).RegisterRoutes(protected)

	env.app = app
	return env
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	pair, err := e.jwt.IssuePair(uuid.New(), "ann@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return pair.Access
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, semanticResponse) {
	t.Helper()

	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	body, _ := io.ReadAll(resp.Body)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &sr); err != nil {
			t.Fatalf("decode %q: %v", body, err)
		}
	}
	return resp.StatusCode, sr
}

func jsonRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.auth.err = usecase.ErrInvalidCredentials

	code, sr := env.do(t, jsonRequest("POST", "/login", `{"email":"a@b.c","password":"x"}`, ""))
	if code != 400 || sr.Message != "Invalid credentials." {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestRegister_CreatedWithTokenPair(t *testing.T) {
	env := newTestEnv(t)
	env.auth.pair = jwt.Pair{Access: "acc", Refresh: "ref"}

	code, sr := env.do(t, jsonRequest("POST", "/register", `{"email":"a@b.c","full_name":"Ann","password":"s3cret-pass"}`, ""))
	if code != 201 {
		t.Fatalf("expected 201, got %d", code)
	}
	var pair dto.TokenPairResponse
	if err := json.Unmarshal(sr.Data, &pair); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pair.Access != "acc" || pair.Refresh != "ref" {
		t.Fatalf("unexpected pair %+v", pair)
	}
}

func TestRegister_FieldErrors(t *testing.T) {
	env := newTestEnv(t)
	env.auth.err = &usecase.ValidationError{Fields: validation.FieldErrors{
		"email": {"user with this email already exists."},
	}}

	code, sr := env.do(t, jsonRequest("POST", "/register", `{"email":"a@b.c"}`, ""))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
	var fe map[string][]string
	if err := json.Unmarshal(sr.Data, &fe); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fe["email"]) != 1 || fe["email"][0] != "user with this email already exists." {
		t.Fatalf("unexpected field errors %v", fe)
	}
}

func TestRefresh_InvalidTokenIs401(t *testing.T) {
	env := newTestEnv(t)
	env.auth.err = usecase.ErrInvalidRefreshToken

	code, _ := env.do(t, jsonRequest("POST", "/token/refresh", `{"refresh":"nope"}`, ""))
	if code != 401 {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestListFiltered_NonNumericParams(t *testing.T) {
	env := newTestEnv(t)

	code, sr := env.do(t, httptest.NewRequest("GET", "/jobsf?page=abc&salary=lots&min_salary=1.5", nil))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
	var fe map[string][]string
	if err := json.Unmarshal(sr.Data, &fe); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fe["page"]) == 0 || len(fe["salary"]) == 0 || len(fe["min_salary"]) != 0 {
		t.Fatalf("unexpected field errors %v", fe)
	}
}

func TestListFiltered_InvalidPage(t *testing.T) {
	env := newTestEnv(t)
	env.list.err = usecase.ErrInvalidPage

	code, sr := env.do(t, httptest.NewRequest("GET", "/jobsf?page=9", nil))
	if code != 404 || sr.Message != "Invalid page." {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestListFiltered_MapsParamsAndLinks(t *testing.T) {
	env := newTestEnv(t)
	salary := 1500.5
	env.list.page = usecase.JobListPage{
		Count: 30, Page: 2, PageSize: 5, HasNext: true, HasPrevious: true,
		Items: []job.Job{{ID: 1, Title: "Go", Salary: &salary, CreatedAt: time.Now()}},
	}

	code, sr := env.do(t, httptest.NewRequest("GET",
		"/jobsf?search=go+remote&name=dev&job_type=remote&job_type=hybrid&min_salary=100&publish_time=week&page=2&page_size=5", nil))
	if code != 200 {
		t.Fatalf("expected 200, got %d (%s)", code, sr.Message)
	}

	p := env.list.last
	if p.Search != "go remote" || p.Title != "dev" || p.Page != 2 || p.PageSize != 5 || p.PublishTime != "week" {
		t.Fatalf("unexpected params %+v", p)
	}
	if strings.Join(p.JobTypes, ",") != "remote,hybrid" {
		t.Fatalf("unexpected job types %v", p.JobTypes)
	}
	if p.MinSalary == nil || *p.MinSalary != 100 {
		t.Fatalf("unexpected min salary %v", p.MinSalary)
	}

	var out dto.JobListResponse
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 30 || len(out.Results) != 1 {
		t.Fatalf("unexpected page %+v", out)
	}
	if out.Results[0].Salary == nil || *out.Results[0].Salary != "1500.50" {
		t.Fatalf("expected salary with two decimals, got %v", out.Results[0].Salary)
	}
	if out.Next == nil || !strings.Contains(*out.Next, "page=3") {
		t.Fatalf("unexpected next %v", out.Next)
	}
	if out.Previous == nil || !strings.Contains(*out.Previous, "page=1") {
		t.Fatalf("unexpected previous %v", out.Previous)
	}
}

func TestCreateJob_JSONSalaryAsString(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Go","company":"Acme","location":"Almaty","job_type":"remote","description":"d","salary":"1200.25","currency":"USD","jdata":{"a":1}}`
	code, _ := env.do(t, jsonRequest("POST", "/jobs/create", body, ""))
	if code != 201 {
		t.Fatalf("expected 201, got %d", code)
	}
	if env.create.in.Salary == nil || *env.create.in.Salary != 1200.25 {
		t.Fatalf("unexpected salary %v", env.create.in.Salary)
	}
	if string(env.create.in.JData) != `{"a":1}` {
		t.Fatalf("unexpected jdata %s", env.create.in.JData)
	}
}

func TestCreateJob_JSONSalaryNotANumber(t *testing.T) {
	env := newTestEnv(t)

	code, sr := env.do(t, jsonRequest("POST", "/jobs/create", `{"title":"Go","salary":"abc"}`, ""))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(string(sr.Data), dto.NotANumberMessage) {
		t.Fatalf("expected salary error, got %s", sr.Data)
	}
}

func TestCreateJob_MultipartWithLogo(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "Designer")
	_ = w.WriteField("salary", "99.5")
	_ = w.WriteField("jdata", `[1,2]`)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	h.Set("Content-Type", "image/png")
	part, _ := w.CreatePart(h)
	_, _ = part.Write([]byte("png-bytes"))
	_ = w.Close()

	req := httptest.NewRequest("POST", "/jobs/create", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	code, _ := env.do(t, req)
	if code != 201 {
		t.Fatalf("expected 201, got %d", code)
	}
	in := env.create.in
	if in.Title != "Designer" || in.Salary == nil || *in.Salary != 99.5 || string(in.JData) != "[1,2]" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Logo == nil || in.Logo.ContentType != "image/png" || string(env.create.logo) != "png-bytes" {
		t.Fatalf("unexpected logo %+v", in.Logo)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, httptest.NewRequest("GET", "/saved-jobs", nil))
	if code != 401 {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	pair, _ := env.jwt.IssuePair(uuid.New(), "")
	req := httptest.NewRequest("GET", "/saved-jobs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	code, _ = env.do(t, req)
	if code != 401 {
		t.Fatalf("expected 401 for refresh token, got %d", code)
	}
}

func TestSaveJob_StatusByOutcome(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	env.saved.created = true
	code, sr := env.do(t, jsonRequest("POST", "/saved-jobs", `{"job_id":3}`, tok))
	if code != 201 || sr.Message != "Job saved successfully" {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}

	env.saved.created = false
	code, sr = env.do(t, jsonRequest("POST", "/saved-jobs", `{"job_id":3}`, tok))
	if code != 200 || sr.Message != "Job is already saved" {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}

	env.saved.err = usecase.ErrJobNotFound
	code, sr = env.do(t, jsonRequest("POST", "/saved-jobs", `{"job_id":404}`, tok))
	if code != 404 || sr.Message != "Job not found" {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestRemoveSavedJob(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	req := httptest.NewRequest("DELETE", "/saved-jobs/7", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	code, _ := env.do(t, req)
	if code != 204 {
		t.Fatalf("expected 204, got %d", code)
	}

	env.saved.err = usecase.ErrSavedJobNotFound
	req = httptest.NewRequest("DELETE", "/saved-jobs/7", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	code, sr := env.do(t, req)
	if code != 404 || sr.Message != "Saved job not found" {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestReconcile_ItemValidationError(t *testing.T) {
	env := newTestEnv(t)
	idx := 1
	env.profile.err = &usecase.ValidationError{Index: &idx, Fields: validation.FieldErrors{"start_date": {"bad"}}}

	code, sr := env.do(t, jsonRequest("PATCH", "/profile/work_experience", `{"experiences":[{},{}]}`, env.token(t)))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
	var body struct {
		Index  int                 `json:"index"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(sr.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Index != 1 || body.Errors["start_date"][0] != "bad" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestReconcile_ItemNotFoundAndBadJSON(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	env.profile.err = &usecase.ItemNotFoundError{Resource: "Work experience", ID: 5}
	code, sr := env.do(t, jsonRequest("PATCH", "/profile/work_experience", `{"experiences":[{"id":5}]}`, tok))
	if code != 404 || sr.Message != "Work experience with ID 5 not found." {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}

	code, sr = env.do(t, jsonRequest("PATCH", "/profile/work_experience", `{"experiences":`, tok))
	if code != 400 || sr.Message != MessageInvalidFormat {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestReconcile_ResponseShape(t *testing.T) {
	env := newTestEnv(t)
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	env.profile.workResult = usecase.ReconcileResult[profile.WorkExperience]{
		Created: []profile.WorkExperience{{ID: 4, JobTitle: "Dev", StartDate: start}},
	}

	code, sr := env.do(t, jsonRequest("PATCH", "/profile/work_experience",
		`{"experiences":[{"id":null,"job_title":"Dev"}]}`, env.token(t)))
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["created"]; !ok {
		t.Fatalf("expected created in %s", sr.Data)
	}
	if _, ok := body["updated"]; ok {
		t.Fatalf("expected no updated in %s", sr.Data)
	}
	if _, ok := body["deleted_count"]; ok {
		t.Fatalf("expected no deleted_count in %s", sr.Data)
	}

	item := env.profile.lastBatch.Experiences[0]
	if !item.ID.Set || !item.ID.Null || item.JobTitle.V != "Dev" {
		t.Fatalf("unexpected decoded item %+v", item)
	}
}

func TestUploadResume_NoFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("other", "x")
	_ = w.Close()
	req := httptest.NewRequest("POST", "/upload_resume", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token(t))

	code, sr := env.do(t, req)
	if code != 400 || sr.Message != MessageNoFile {
		t.Fatalf("unexpected response %d %q", code, sr.Message)
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	env := newTestEnv(t)
	env.list.err = usecase.ErrInternal

	code, sr := env.do(t, httptest.NewRequest("GET", "/jobs", nil))
	if code != 500 || sr.Message != "internal server error" || (len(sr.Data) != 0 && string(sr.Data) != "null") {
		t.Fatalf("unexpected response %d %q %s", code, sr.Message, sr.Data)
	}
}
