// Command probe exercises a deployed instance end to end: signup, category
// and expense CRUD, the blocked category delete, and account teardown. It
// talks only to the HTTP boundary and leaves nothing behind on success.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

type probeEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type probe struct {
	base   string
	client *http.Client
	token  string
	failed bool
}

func main() {
	base := flag.String("base", "http://localhost:8080", "base URL of the instance to probe")
	flag.Parse()

	p := &probe{
		base:   *base,
		client: &http.Client{Timeout: 15 * time.Second},
	}

	email := fmt.Sprintf("probe-%d@example.com", time.Now().UnixNano())

	var signup struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	p.step("signup", http.MethodPost, "/api/auth/signup", http.StatusCreated,
		map[string]any{"name": "Probe", "email": email, "password": "Probe-Secret123"}, &signup)
	p.token = signup.Token

	var login struct {
		Token string `json:"token"`
	}
	p.step("login", http.MethodPost, "/api/auth/login", http.StatusOK,
		map[string]any{"email": email, "password": "Probe-Secret123"}, &login)

	var created struct {
		Category struct {
			ID int64 `json:"id"`
		} `json:"category"`
	}
	p.step("create category", http.MethodPost, "/api/categories", http.StatusCreated,
		map[string]any{"name": "Probe Food"}, &created)
	categoryID := created.Category.ID

	var expense struct {
		Expense struct {
			ID           int64   `json:"id"`
			Amount       float64 `json:"amount"`
			CategoryName string  `json:"category_name"`
		} `json:"expense"`
	}
	p.step("create expense", http.MethodPost, "/api/expenses", http.StatusCreated,
		map[string]any{"category_id": categoryID, "amount": 12.50, "date": "2024-01-01"}, &expense)

	p.step("delete referenced category is blocked", http.MethodDelete,
		fmt.Sprintf("/api/categories/%d", categoryID), http.StatusBadRequest, nil, nil)

	p.step("delete expense", http.MethodDelete,
		fmt.Sprintf("/api/expenses/%d", expense.Expense.ID), http.StatusOK, nil, nil)

	p.step("delete category", http.MethodDelete,
		fmt.Sprintf("/api/categories/%d", categoryID), http.StatusOK, nil, nil)

	p.step("update profile", http.MethodPut, "/api/users/me", http.StatusOK,
		map[string]any{"name": "Probe Renamed"}, nil)

	p.step("delete account", http.MethodDelete, "/api/users/me", http.StatusOK, nil, nil)

	if p.failed {
		fmt.Println("FAIL")
		os.Exit(1)
	}
	fmt.Println("PASS")
}

// step performs one request, checks the status code, and decodes data into
// out when provided. Failures are reported but do not abort the run, so one
// probe invocation reports every broken endpoint at once.
func (p *probe) step(name, method, path string, wantStatus int, body any, out any) {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			p.fail(name, err)
			return
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, p.base+path, reqBody)
	if err != nil {
		p.fail(name, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.fail(name, err)
		return
	}
	defer resp.Body.Close()

	var env probeEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		p.fail(name, fmt.Errorf("decode response: %w", err))
		return
	}

	if resp.StatusCode != wantStatus {
		p.fail(name, fmt.Errorf("status %d, want %d (%s)", resp.StatusCode, wantStatus, env.Message))
		return
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			p.fail(name, fmt.Errorf("decode data: %w", err))
			return
		}
	}

	fmt.Printf("ok   %s\n", name)
}

func (p *probe) fail(name string, err error) {
	p.failed = true
	fmt.Printf("FAIL %s: %v\n", name, err)
}
