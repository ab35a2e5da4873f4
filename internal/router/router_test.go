package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"pet-adoption/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()

	if opts.UploadDir == "" {
		opts.UploadDir = t.TempDir()
	}
	if opts.LoginRatePerMinute == 0 {
		opts.LoginRatePerMinute = 100
	}
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t, router.Options{})

	ana := newClient(t, ts.URL)
	bob := newClient(t, ts.URL)
	anon := newClient(t, ts.URL)

	// 1) Signup; username repetido => 409
	signup(t, ana, "ana", "secret")
	signup(t, bob, "bob", "1234")
	{
		st, body := ana.do("POST", "/signup", map[string]any{"username": "ana", "password": "x"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate signup, got %d body=%s", st, string(body))
		}
	}

	// 2) Anónimo no pasa el gate
	{
		st, _ := anon.do("GET", "/pets", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous, got %d", st)
		}
	}

	// 3) Login: password incorrecto => 401, correcto => cookie
	{
		st, _ := ana.do("POST", "/login", map[string]any{"username": "ana", "password": "nope"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
	}
	login(t, ana, "ana", "secret")
	login(t, bob, "bob", "1234")
	{
		st, body := ana.do("GET", "/me", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"username":"ana"`) {
			t.Fatalf("expected 200 me=ana, got %d body=%s", st, string(body))
		}
	}

	// 4) Ana publica una mascota
	petID := createPet(t, ana, map[string]any{
		"name":        "Adam",
		"species":     "Dog",
		"age":         3,
		"zipcode":     "92101",
		"description": "friendly",
		"tag":         "adopt",
		"image":       "adam.jpg",
	})
	{
		st, _ := ana.do("POST", "/pets", map[string]any{
			"name": "Bad", "species": "Cat", "age": 1, "zipcode": "9210",
			"description": "x", "tag": "x", "image": "x.jpg",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad zipcode, got %d", st)
		}
	}
	{
		st, _ := ana.do("POST", "/pets", map[string]any{
			"name": "Bad", "species": "Cat", "age": "1", "zipcode": "92101",
			"description": "x", "tag": "x", "image": "x.jpg",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 string age in json, got %d", st)
		}
	}

	// 5) Filtros
	{
		var dogs, cats []map[string]any
		getJSON(t, bob, "/pets?species=Dog&age=3", &dogs)
		getJSON(t, bob, "/pets?species=Cat", &cats)
		if len(dogs) != 1 || len(cats) != 0 {
			t.Fatalf("expected 1 dog and 0 cats, got %d and %d", len(dogs), len(cats))
		}
	}

	// 6) Transferencias
	{
		st, _ := bob.do("POST", "/pets/"+petID+"/transfer", map[string]any{"new_owner": "bob"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 non-owner transfer, got %d", st)
		}
	}
	{
		st, _ := ana.do("POST", "/pets/"+petID+"/transfer", map[string]any{"new_owner": "nobody"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown user, got %d", st)
		}
	}
	{
		st, body := ana.do("POST", "/pets/"+petID+"/transfer", map[string]any{"new_owner": "bob"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 transfer, got %d body=%s", st, string(body))
		}
		var p struct {
			Owner       string   `json:"owner"`
			PriorOwners []string `json:"prior_owners"`
		}
		_ = json.Unmarshal(body, &p)
		if p.Owner != "bob" || len(p.PriorOwners) != 1 || p.PriorOwners[0] != "ana" {
			t.Fatalf("unexpected pet after transfer: %+v", p)
		}
	}
	{
		st, _ := bob.do("POST", "/pets/"+petID+"/transfer", map[string]any{"new_owner": "ana"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 transfer back to prior owner, got %d", st)
		}
	}
	{
		var h struct {
			PetID       string   `json:"pet_id"`
			PriorOwners []string `json:"prior_owners"`
		}
		getJSON(t, bob, "/pets/"+petID+"/history", &h)
		if h.PetID != petID || len(h.PriorOwners) != 1 || h.PriorOwners[0] != "ana" {
			t.Fatalf("unexpected history: %+v", h)
		}
	}

	// 7) Posts y likes
	postID := createPost(t, ana)
	expectLikes(t, ana, "POST", "/posts/"+postID+"/like", http.StatusOK, 1)
	expectLikes(t, ana, "POST", "/posts/"+postID+"/like", http.StatusConflict, -1)
	expectLikes(t, bob, "POST", "/posts/"+postID+"/like", http.StatusOK, 2)
	expectLikes(t, ana, "POST", "/posts/"+postID+"/unlike", http.StatusOK, 1)
	expectLikes(t, ana, "POST", "/posts/"+postID+"/unlike", http.StatusOK, 1)

	// 8) Comments
	var commentID string
	{
		st, body := bob.do("POST", "/posts/"+postID+"/comments", map[string]any{"comment": "so cute"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 comment, got %d body=%s", st, string(body))
		}
		var c struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &c)
		commentID = c.ID
	}
	expectLikes(t, ana, "POST", "/comments/"+commentID+"/like", http.StatusOK, 1)
	{
		st, _ := bob.do("POST", "/posts/0123456789abcdef01234567/comments", map[string]any{"comment": "x"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 comment on missing post, got %d", st)
		}
	}
	{
		var detail struct {
			Likes     int  `json:"likes"`
			LikedByMe bool `json:"liked_by_me"`
			Comments  []struct {
				Body      string `json:"body"`
				Likes     int    `json:"likes"`
				LikedByMe bool   `json:"liked_by_me"`
			} `json:"comments"`
		}
		getJSON(t, ana, "/posts/"+postID, &detail)
		if detail.Likes != 1 || detail.LikedByMe {
			t.Fatalf("unexpected post likes: %+v", detail)
		}
		if len(detail.Comments) != 1 || detail.Comments[0].Likes != 1 || !detail.Comments[0].LikedByMe {
			t.Fatalf("unexpected comments: %+v", detail.Comments)
		}
	}

	// 9) Logout revoca la sesión
	{
		st, _ := ana.do("POST", "/logout", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 logout, got %d", st)
		}
		st, _ = ana.do("GET", "/me", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func TestHTTP_BearerTokenAndRevocation(t *testing.T) {
	ts := newServer(t, router.Options{})
	c := newClient(t, ts.URL)
	signup(t, c, "ana", "secret")

	st, body := c.do("POST", "/login", map[string]any{"username": "ana", "password": "secret"})
	if st != http.StatusOK {
		t.Fatalf("login: %d", st)
	}
	var lr struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &lr)

	// cliente sin cookies, solo Authorization
	bearer := newClient(t, ts.URL)
	bearer.token = lr.Token
	if st, _ := bearer.do("GET", "/me", nil); st != http.StatusOK {
		t.Fatalf("expected 200 with bearer, got %d", st)
	}

	if st, _ := bearer.do("POST", "/logout", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 logout, got %d", st)
	}
	// la cookie del otro cliente apuntaba a la misma sesión
	if st, _ := c.do("GET", "/me", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 after revocation, got %d", st)
	}
}

func TestHTTP_MultipartPetWithImage(t *testing.T) {
	ts := newServer(t, router.Options{})
	c := newClient(t, ts.URL)
	signup(t, c, "ana", "secret")
	login(t, c, "ana", "secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name": "Joe", "species": "Cat", "age": "2", "zipcode": "07053",
		"description": "sleepy", "tag": "adopt",
	} {
		_ = mw.WriteField(k, v)
	}
	fw, _ := mw.CreateFormFile("file", "joe.png")
	_, _ = fw.Write([]byte("fake-png"))
	_ = mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/pets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := c.hc.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", res.StatusCode, string(body))
	}

	var p struct {
		Image string `json:"image"`
		Age   int    `json:"age"`
	}
	_ = json.Unmarshal(body, &p)
	if !strings.HasSuffix(p.Image, ".png") || p.Age != 2 {
		t.Fatalf("unexpected pet: %s", string(body))
	}

	st, img := c.do("GET", "/images/"+p.Image, nil)
	if st != http.StatusOK || string(img) != "fake-png" {
		t.Fatalf("expected uploaded image, got %d %q", st, string(img))
	}
}

func TestHTTP_RejectedCreateDiscardsUpload(t *testing.T) {
	dir := t.TempDir()
	ts := newServer(t, router.Options{UploadDir: dir})
	c := newClient(t, ts.URL)
	signup(t, c, "ana", "secret")
	login(t, c, "ana", "secret")

	// zipcode inválido
	st, body := postMultipart(t, c, "/pets", map[string]string{
		"name": "Joe", "species": "Cat", "age": "2", "zipcode": "7053",
		"description": "sleepy", "tag": "adopt",
	}, "joe.png")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 pet, got %d body=%s", st, string(body))
	}

	// age no numérico
	st, body = postMultipart(t, c, "/pets", map[string]string{
		"name": "Joe", "species": "Cat", "age": "two", "zipcode": "07053",
		"description": "sleepy", "tag": "adopt",
	}, "joe.png")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 pet age, got %d body=%s", st, string(body))
	}

	// post sin título
	st, body = postMultipart(t, c, "/posts", map[string]string{
		"title": " ", "tag": "news", "body": "hi",
	}, "news.png")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 post, got %d body=%s", st, string(body))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files left in upload dir, got %d", len(entries))
	}
}

func TestHTTP_LoginRateLimited(t *testing.T) {
	ts := newServer(t, router.Options{LoginRatePerMinute: 2})
	c := newClient(t, ts.URL)

	for i := 0; i < 2; i++ {
		if st, _ := c.do("POST", "/login", map[string]any{"username": "x", "password": "y"}); st != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, st)
		}
	}
	if st, _ := c.do("POST", "/login", map[string]any{"username": "x", "password": "y"}); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", st)
	}
}

func TestHTTP_Infra(t *testing.T) {
	ts := newServer(t, router.Options{})
	c := newClient(t, ts.URL)

	for _, path := range []string{"/health", "/metrics", "/swagger/doc.json"} {
		if st, body := c.do("GET", path, nil); st != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d body=%s", path, st, string(body))
		}
	}
}

type client struct {
	t     *testing.T
	base  string
	hc    *http.Client
	token string
}

func newClient(t *testing.T, base string) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &client{t: t, base: base, hc: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func postMultipart(t *testing.T, c *client, path string, fields map[string]string, fileName string) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, _ := mw.CreateFormFile("file", fileName)
	_, _ = fw.Write([]byte("fake-image"))
	_ = mw.Close()

	req, err := http.NewRequest("POST", c.base+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := c.hc.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func signup(t *testing.T, c *client, username, password string) {
	t.Helper()
	st, body := c.do("POST", "/signup", map[string]any{"username": username, "password": password})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup %s, got %d body=%s", username, st, string(body))
	}
}

func login(t *testing.T, c *client, username, password string) {
	t.Helper()
	st, body := c.do("POST", "/login", map[string]any{"username": username, "password": password})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login %s, got %d body=%s", username, st, string(body))
	}
}

func createPet(t *testing.T, c *client, payload map[string]any) string {
	t.Helper()

	st, body := c.do("POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createPost(t *testing.T, c *client) string {
	t.Helper()

	st, body := c.do("POST", "/posts", map[string]any{
		"title": "Adam found a home",
		"image": "adam.jpg",
		"tag":   "news",
		"body":  "thanks everyone",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create post, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.ID
}

// expectLikes verifica status y, si want >= 0, el conteo devuelto.
func expectLikes(t *testing.T, c *client, method, path string, status, want int) {
	t.Helper()

	st, body := c.do(method, path, nil)
	if st != status {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, status, st, string(body))
	}
	if want < 0 {
		return
	}
	var resp struct {
		Likes int `json:"likes"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Likes != want {
		t.Fatalf("%s %s: expected %d likes, got %d", method, path, want, resp.Likes)
	}
}

func getJSON(t *testing.T, c *client, path string, out any) {
	t.Helper()

	st, body := c.do("GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d body=%s", path, st, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("GET %s: decode: %v body=%s", path, err, string(body))
	}
}
