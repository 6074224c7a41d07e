// Package frappefake is an in-memory stand-in for the document backend,
// served over httptest. It understands the resource, method, login and
// upload endpoints closely enough for client and usecase tests.
package frappefake

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Request is one recorded inbound call.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

type failRule struct {
	method string
	path   string
	status int
	exc    string
	left   int // <0 means forever
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	docs     map[string][]map[string]any
	seq      int
	users    map[string]string
	sessions map[string]string
	rules    []*failRule
	requests []Request
}

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func New() *Server {
	s := &Server{
		docs:     map[string][]map[string]any{},
		users:    map[string]string{},
		sessions: map[string]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/resource/{doctype}", s.collection)
	mux.HandleFunc("/api/resource/{doctype}/{name}", s.document)
	mux.HandleFunc("POST /api/method/{method}", s.method)
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddUser registers credentials accepted by /api/method/login.
func (s *Server) AddUser(usr, pwd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[usr] = pwd
}

// Seed stores doc under doctype and returns its name.
func (s *Server) Seed(doctype string, doc map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(doctype, doc)["name"].(string)
}

// Doc returns a copy of a stored document, or nil.
func (s *Server) Doc(doctype, name string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.find(doctype, name); d != nil {
		return clone(d)
	}
	return nil
}

// Docs returns copies of all documents of doctype in insertion order.
func (s *Server) Docs(doctype string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.docs[doctype]))
	for _, d := range s.docs[doctype] {
		out = append(out, clone(d))
	}
	return out
}

// Fail makes the next times calls of method on path answer status with exc.
// times < 0 fails forever. path is the decoded URL path.
func (s *Server) Fail(method, path string, status int, exc string, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, &failRule{method: method, path: path, status: status, exc: exc, left: times})
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many recorded requests match method and path prefix.
func (s *Server) Count(method, pathPrefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, pathPrefix) {
			n++
		}
	}
	return n
}

func (s *Server) LastRequest() Request {
	rs := s.Requests()
	if len(rs) == 0 {
		return Request{}
	}
	return rs[len(rs)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		var hit *failRule
		for _, rule := range s.rules {
			if rule.left != 0 && rule.method == r.Method && rule.path == r.URL.Path {
				hit = rule
				if rule.left > 0 {
					rule.left--
				}
				break
			}
		}
		s.mu.Unlock()

		if hit != nil {
			writeJSON(w, hit.status, map[string]any{"exc": hit.exc})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) collection(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")
	switch r.Method {
	case http.MethodGet:
		s.list(w, r, doctype)
	case http.MethodPost:
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"exc": "invalid JSON body", "exc_type": "ValidationError"})
			return
		}
		s.mu.Lock()
		created := clone(s.insert(doctype, doc))
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"data": created})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"exc": "method not allowed"})
	}
}

func (s *Server) document(w http.ResponseWriter, r *http.Request) {
	doctype, name := r.PathValue("doctype"), r.PathValue("name")
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(doctype, name)
	if d == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"exc":      fmt.Sprintf("%s %s not found", doctype, name),
			"exc_type": "DoesNotExistError",
		})
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"data": clone(d)})
	case http.MethodPut:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"exc": "invalid JSON body", "exc_type": "ValidationError"})
			return
		}
		for k, v := range patch {
			d[k] = v
		}
		s.seq++
		d["modified"] = stamp(s.seq)
		writeJSON(w, http.StatusOK, map[string]any{"data": clone(d)})
	case http.MethodDelete:
		list := s.docs[doctype]
		for i, x := range list {
			if x["name"] == name {
				s.docs[doctype] = append(list[:i], list[i+1:]...)
				break
			}
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"message": "ok"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"exc": "method not allowed"})
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, doctype string) {
	q := r.URL.Query()
	var filters map[string]any
	if raw := q.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			writeJSON(w, http.StatusExpectationFailed, map[string]any{"exc": "invalid filters"})
			return
		}
	}
	var fields []string
	if raw := q.Get("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			writeJSON(w, http.StatusExpectationFailed, map[string]any{"exc": "invalid fields"})
			return
		}
	}

	s.mu.Lock()
	var rows []map[string]any
	for _, d := range s.docs[doctype] {
		if matches(d, filters) {
			rows = append(rows, clone(d))
		}
	}
	s.mu.Unlock()

	if ob := q.Get("order_by"); ob != "" {
		field, dir, _ := strings.Cut(strings.TrimSpace(ob), " ")
		desc := strings.EqualFold(strings.TrimSpace(dir), "desc")
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return less(rows[j][field], rows[i][field])
			}
			return less(rows[i][field], rows[j][field])
		})
	}
	if off, _ := strconv.Atoi(q.Get("offset")); off > 0 {
		if off >= len(rows) {
			rows = nil
		} else {
			rows = rows[off:]
		}
	}
	if lim, _ := strconv.Atoi(q.Get("limit")); lim > 0 && lim < len(rows) {
		rows = rows[:lim]
	}
	out := make([]map[string]any, 0, len(rows))
	for _, d := range rows {
		out = append(out, project(d, fields))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *Server) method(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("method") {
	case "login":
		s.login(w, r)
	case "logout":
		s.mu.Lock()
		if ck, err := r.Cookie("sid"); err == nil {
			delete(s.sessions, ck.Value)
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{})
	case "frappe.auth.get_logged_user":
		user := s.sessionUser(r)
		if user == "" {
			writeJSON(w, http.StatusForbidden, map[string]any{"exc": "Not permitted", "exc_type": "PermissionError"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": user})
	case "upload_file":
		s.upload(w, r)
	case "ping":
		writeJSON(w, http.StatusOK, map[string]any{"message": "pong"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"exc": "method not found"})
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Usr string `json:"usr"`
		Pwd string `json:"pwd"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	s.mu.Lock()
	pwd, known := s.users[in.Usr]
	if !known || pwd != in.Pwd {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid Login. Try again.", "exc_type": "AuthenticationError"})
		return
	}
	s.seq++
	sid := fmt.Sprintf("sid%06d", s.seq)
	s.sessions[sid] = in.Usr
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "sid", Value: sid, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "user_id", Value: in.Usr, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged In", "home_page": "/app"})
}

func (s *Server) sessionUser(r *http.Request) string {
	if r.Header.Get("Authorization") != "" {
		return "Administrator"
	}
	ck, err := r.Cookie("sid")
	if err != nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[ck.Value]
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"exc": "expected multipart form"})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"exc": "missing file"})
		return
	}
	defer f.Close()
	content, _ := io.ReadAll(f)

	private := r.FormValue("is_private") == "1"
	prefix := "/files/"
	if private {
		prefix = "/private/files/"
	}
	doc := map[string]any{
		"file_name":           hdr.Filename,
		"file_url":            prefix + hdr.Filename,
		"file_size":           len(content),
		"attached_to_doctype": r.FormValue("doctype"),
		"attached_to_name":    r.FormValue("docname"),
		"attached_to_field":   r.FormValue("fieldname"),
		"folder":              r.FormValue("folder"),
		"is_private":          boolInt(private),
	}
	s.mu.Lock()
	stored := clone(s.insert("File", doc))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": stored})
}

// insert must be called with s.mu held.
func (s *Server) insert(doctype string, doc map[string]any) map[string]any {
	s.seq++
	d := clone(doc)
	name, _ := d["name"].(string)
	if name == "" {
		if doctype == "User" {
			name, _ = d["email"].(string)
		}
		if name == "" {
			name = fmt.Sprintf("%s-%05d", strings.ToUpper(strings.ReplaceAll(doctype, " ", "-")), s.seq)
		}
	}
	d["name"] = name
	d["doctype"] = doctype
	d["owner"] = "Administrator"
	d["modified_by"] = "Administrator"
	d["creation"] = stamp(s.seq)
	d["modified"] = stamp(s.seq)
	if _, ok := d["docstatus"]; !ok {
		d["docstatus"] = 0
	}
	d["idx"] = 0
	s.docs[doctype] = append(s.docs[doctype], d)
	return d
}

func (s *Server) find(doctype, name string) map[string]any {
	for _, d := range s.docs[doctype] {
		if d["name"] == name {
			return d
		}
	}
	return nil
}

func matches(d, filters map[string]any) bool {
	for k, want := range filters {
		if fmt.Sprint(d[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func project(d map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return map[string]any{"name": d["name"]}
	}
	for _, f := range fields {
		if f == "*" {
			return d
		}
	}
	out := map[string]any{}
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

func less(a, b any) bool {
	fa, aok := a.(float64)
	fb, bok := b.(float64)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func clone(d map[string]any) map[string]any {
	b, _ := json.Marshal(d)
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	return out
}

func stamp(seq int) string {
	return epoch.Add(time.Duration(seq) * time.Second).Format("2006-01-02 15:04:05.000000")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
