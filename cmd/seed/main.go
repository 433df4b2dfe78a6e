// Demo data seeder: registers a handful of users and drives the HTTP API to
// create posts, likes, comments, follows and a few direct messages.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var baseURL = envOr("SEED_BASE_URL", "http://localhost:8080")

type seededUser struct {
	ID    string
	Token string
	Email string
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	users := make([]seededUser, 0, 5)
	for i := 0; i < 5; i++ {
		u := register()
		users = append(users, u)
		log.Printf("registered %s", u.Email)
	}

	// Everyone follows the first user; the first user follows back.
	for _, u := range users[1:] {
		do(u.Token, http.MethodPost, "/follows/"+users[0].ID, nil)
		do(users[0].Token, http.MethodPost, "/follows/"+u.ID, nil)
	}

	// A few posts with likes and comments.
	for _, u := range users {
		postID := createPost(u)
		for _, other := range users {
			if other.ID == u.ID {
				continue
			}
			do(other.Token, http.MethodPost, "/posts/"+postID+"/like", nil)
			do(other.Token, http.MethodPost, "/posts/"+postID+"/comments",
				map[string]string{"content": gofakeit.Sentence(8)})
		}
	}

	// A short conversation between the first two users.
	for i := 0; i < 6; i++ {
		from, to := users[0], users[1]
		if i%2 == 1 {
			from, to = to, from
		}
		do(from.Token, http.MethodPost, "/chat/"+to.ID+"/messages",
			map[string]string{"content": gofakeit.Question()})
	}

	log.Println("seeding complete")
}

func register() seededUser {
	email := gofakeit.Email()
	body := map[string]string{
		"email":        email,
		"password":     "123456",
		"full_name":    gofakeit.Name(),
		"role":         gofakeit.RandomString([]string{"Student", "Alumni", "Faculty"}),
		"organization": gofakeit.Company(),
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := post("", "/auth/register", body, &out); err != nil {
		log.Fatalf("register: %v", err)
	}

	var me struct {
		ID string `json:"id"`
	}
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("whoami: %v", err)
	}
	defer resp.Body.Close()
	_ = json.NewDecoder(resp.Body).Decode(&me)

	return seededUser{ID: me.ID, Token: out.Token, Email: email}
}

func createPost(u seededUser) string {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("content", gofakeit.Paragraph(1, 3, 10, " "))
	_ = w.Close()

	req, _ := http.NewRequest(http.MethodPost, baseURL+"/posts", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("create post: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return out.ID
}

func post(token, path string, body, out any) error {
	payload, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", http.MethodPost, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func do(token, method, path string, body any) {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req, _ := http.NewRequest(method, baseURL+path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("%s %s: %v", method, path, err)
		return
	}
	_ = resp.Body.Close()
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
