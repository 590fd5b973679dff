package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type upsertUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // teacher|student|admin
}

// POST /users/bulk — create or update accounts. Admin only.
func BulkUpsertUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []upsertUserReq
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		upserted := 0
		for _, u := range reqs {
			if u.Username == "" || u.Password == "" || u.Role == "" {
				http.Error(w, "username, password and role required", http.StatusBadRequest)
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 12)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			_, err = db.Exec(`INSERT INTO users (username,password_hash,role,created_at)
				VALUES ($1,$2,$3,$4)
				ON CONFLICT (username) DO UPDATE SET password_hash=EXCLUDED.password_hash, role=EXCLUDED.role`,
				u.Username, string(hash), u.Role, time.Now().Unix())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			upserted++
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"upserted": upserted})
	}
}

// GET /users — list accounts, without hashes. Admin only.
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	type user struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`SELECT username, role FROM users ORDER BY username`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []user{}
		for rows.Next() {
			var u user
			if err := rows.Scan(&u.Username, &u.Role); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
