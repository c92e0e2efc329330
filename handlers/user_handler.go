package handlers

import (
	"encoding/json"
	"net/http"

	"authbackend/auth"
	"authbackend/models"
	"authbackend/repository"

	"go.uber.org/zap"
)

type UserHandler struct {
	Repo   repository.UserRepository
	Tokens *auth.TokenService
	Log    *zap.Logger
}

// Register handler
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Username, email, and password are required",
		})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("failed to hash password", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot register the user",
		})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := h.Repo.CreateUser(r.Context(), user); err != nil {
		h.Log.Error("failed to create user", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot register the user",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user.Public(),
	})
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Email and password are required",
		})
		return
	}

	user, err := h.Repo.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		h.Log.Error("failed to look up user", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot login the user",
		})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusForbidden, ApiResponse{
			Success: false,
			Message: "Cannot find the user",
		})
		return
	}

	if !auth.PasswordMatches(creds.Password, user.Password) {
		writeJSON(w, http.StatusForbidden, ApiResponse{
			Success: false,
			Message: "Invalid password",
		})
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Log.Error("failed to issue token", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot login the user",
		})
		return
	}

	if err := h.Repo.SaveToken(r.Context(), user.ID, token); err != nil {
		h.Log.Error("failed to save token", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot login the user",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User logged in successfully",
		Token:   token,
	})
}

// GetAll handler, admin only
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	users, err := h.Repo.GetAllUsers(r.Context())
	if err != nil {
		h.Log.Error("failed to list users", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot get the users",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "All users",
		Data:    models.PublicUsers(users),
	})
}
