package panel

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
	"gizindir-panel/internal/repository"
	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const dashboardFailed = "Panel verileri getirilirken bir hata oluştu"

// Deps are the services the panel pages render
type Deps struct {
	Users        UserService
	Matches      MatchService
	Messages     MessageService
	Sessions     SessionService
	Interactions InteractionService
	Dashboard    handlers.CountsProvider
	Tokens       TokenInspector
}

// Panel serves the server-rendered admin pages
type Panel struct {
	templates map[string]*template.Template
	resources map[string]resource
	order     []string
	dashboard handlers.CountsProvider
}

type navItem struct {
	Key   string
	Title string
}

type pageData struct {
	Title   string
	Active  string
	Nav     []navItem
	Content any
}

type dashboardView struct {
	Cards []card
	Error string
}

type card struct {
	Key   string
	Title string
	Count int64
}

type entityView struct {
	Key        string
	Labels     Labels
	Mutable    bool
	Rows       []Row
	Pagination Pagination
	Form       *Form
	Error      string
}

// New parses the embedded templates and binds the entity pages
func New(deps Deps) (*Panel, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	p := &Panel{
		templates: templates,
		resources: make(map[string]resource),
		dashboard: deps.Dashboard,
	}
	p.add(userResource{users: deps.Users})
	p.add(matchResource{matches: deps.Matches, users: deps.Users})
	p.add(messageResource{messages: deps.Messages, users: deps.Users})
	p.add(sessionResource{sessions: deps.Sessions, users: deps.Users, tokens: deps.Tokens})
	p.add(interactionResource{interactions: deps.Interactions, users: deps.Users})

	log.Info().Int("pages", len(templates)).Msg("Panel templates loaded")
	return p, nil
}

func (p *Panel) add(res resource) {
	key := res.entity().Name
	p.resources[key] = res
	p.order = append(p.order, key)
}

func parseTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		ts, err := template.ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = ts
	}
	return templates, nil
}

// Routes mounts the panel pages
func (p *Panel) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	r.Get("/dashboard", p.handleDashboard)
	r.Get("/dashboard/{entity}", p.handleList)
	r.Post("/dashboard/{entity}", p.handleSubmit)
	r.Post("/dashboard/{entity}/{id}/delete", p.handleDelete)
}

func (p *Panel) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboardView{}
	status := http.StatusOK

	counts, err := p.dashboard.Counts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard counts")
		view.Error = dashboardFailed
		status = http.StatusInternalServerError
		counts = &models.Counts{}
	}

	for _, key := range p.order {
		view.Cards = append(view.Cards, card{
			Key:   key,
			Title: p.resources[key].labels().Title,
			Count: countOf(counts, key),
		})
	}

	p.render(w, status, "dashboard.html", "Panel", "", view)
}

func countOf(c *models.Counts, key string) int64 {
	switch key {
	case services.EntityUsers:
		return c.Users
	case services.EntityMatches:
		return c.Matches
	case services.EntityMessages:
		return c.Messages
	case services.EntitySessions:
		return c.Sessions
	case services.EntityInteractions:
		return c.Interactions
	}
	return 0
}

func (p *Panel) handleList(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	entity := res.entity()
	view := p.entityView(ctx, res, pageParam(r.URL.Query()))
	status := http.StatusOK
	if view.Error != "" {
		status = http.StatusInternalServerError
	}

	editID, _ := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64)
	if editID > 0 && entity.Mutable {
		form, err := p.form(ctx, res, editID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			view.Error = entity.Messages.NotFound
			status = http.StatusNotFound
		case err != nil:
			log.Error().Err(err).Str("entity", entity.Name).Int64("id", editID).Msg("Failed to load edit form")
			view.Error = entity.Messages.GetFailed
			status = http.StatusInternalServerError
		default:
			view.Form = form
		}
	}

	p.render(w, status, "entity.html", view.Labels.Title, entity.Name, view)
}

func (p *Panel) handleSubmit(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	entity := res.entity()
	if err := r.ParseForm(); err != nil {
		respondPage(w, entity.Messages.InvalidBody, http.StatusBadRequest)
		return
	}

	id := intField(r.PostForm, "id")
	if id < 0 || (id > 0 && !entity.Mutable) {
		respondPage(w, entity.Messages.InvalidID, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	page := pageParam(r.PostForm)

	err := res.submit(ctx, id, r.PostForm)
	if err == nil {
		http.Redirect(w, r, listURL(entity.Name, page), http.StatusSeeOther)
		return
	}

	view := p.entityView(ctx, res, page)
	form, ferr := p.form(ctx, res, id)
	if ferr != nil {
		form, ferr = p.form(ctx, res, 0)
	}
	if ferr != nil {
		log.Error().Err(ferr).Str("entity", entity.Name).Msg("Failed to rebuild form")
		form = &Form{ID: id}
	}
	form.ID = id
	if id > 0 {
		form.Title = res.labels().Edit
	}
	form.fill(r.PostForm)

	status := http.StatusBadRequest
	var ferror formError
	var verr *services.ValidationError
	switch {
	case errors.As(err, &ferror):
		form.Error = string(ferror)
	case errors.As(err, &verr):
		form.Error = entity.Messages.InvalidBody
		form.Details = verr.Fields
	default:
		status = http.StatusInternalServerError
		form.Error = entity.Messages.CreateFailed
		if id > 0 {
			form.Error = entity.Messages.UpdateFailed
		}
		log.Error().Err(err).Str("entity", entity.Name).Int64("id", id).Msg("Failed to save record")
	}
	view.Form = form

	p.render(w, status, "entity.html", view.Labels.Title, entity.Name, view)
}

func (p *Panel) handleDelete(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	entity := res.entity()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondPage(w, entity.Messages.InvalidID, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	page := 1
	if err := r.ParseForm(); err == nil {
		page = pageParam(r.PostForm)
	}

	if err := res.remove(ctx, id); err != nil {
		log.Error().Err(err).Str("entity", entity.Name).Int64("id", id).Msg("Failed to delete record")
		view := p.entityView(ctx, res, page)
		view.Error = entity.Messages.DeleteFailed
		p.render(w, http.StatusInternalServerError, "entity.html", view.Labels.Title, entity.Name, view)
		return
	}

	http.Redirect(w, r, listURL(entity.Name, page), http.StatusSeeOther)
}

func (p *Panel) lookup(w http.ResponseWriter, r *http.Request) (resource, bool) {
	res, ok := p.resources[chi.URLParam(r, "entity")]
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return res, true
}

// entityView loads the table and a blank create form for one page. Each
// request builds its own view; nothing is shared between requests.
func (p *Panel) entityView(ctx context.Context, res resource, page int) *entityView {
	entity := res.entity()
	view := &entityView{
		Key:     entity.Name,
		Labels:  res.labels(),
		Mutable: entity.Mutable,
	}

	rows, err := res.rows(ctx)
	if err != nil {
		log.Error().Err(err).Str("entity", entity.Name).Msg("Failed to list records")
		view.Error = entity.Messages.ListFailed
	}

	view.Pagination = Paginate(len(rows), page, PageSize)
	view.Rows = Slice(rows, view.Pagination)

	form, err := p.form(ctx, res, 0)
	if err != nil {
		log.Error().Err(err).Str("entity", entity.Name).Msg("Failed to build create form")
	} else {
		view.Form = form
	}
	return view
}

func (p *Panel) form(ctx context.Context, res resource, id int64) (*Form, error) {
	fields, err := res.fields(ctx, id)
	if err != nil {
		return nil, err
	}

	title := res.labels().New
	if id > 0 {
		title = res.labels().Edit
	}
	return &Form{ID: id, Title: title, Fields: fields}, nil
}

func (p *Panel) render(w http.ResponseWriter, status int, name, title, active string, content any) {
	ts, ok := p.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData{Title: title, Active: active, Content: content}
	for _, key := range p.order {
		data.Nav = append(data.Nav, navItem{Key: key, Title: p.resources[key].labels().Title})
	}

	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "base.html", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func respondPage(w http.ResponseWriter, message string, status int) {
	http.Error(w, message, status)
}

func pageParam(values url.Values) int {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func listURL(entity string, page int) string {
	return "/dashboard/" + entity + "?page=" + strconv.Itoa(max(page, 1))
}
