package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

// AuthService autentica usuarios y emite tokens HS256. La contraseña sólo se
// verifica contra el hash bcrypt almacenado; no existe comparación en claro.
type AuthService struct {
	UsuarioRepo repositories.UsuarioRepository
	JWTSecret   string
	JWTTTL      time.Duration
	RequestID   string
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required"`
}

type LoginResult struct {
	Token   string         `json:"token"`
	Usuario models.Usuario `json:"user"`
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	correo := strings.TrimSpace(strings.ToLower(in.Username))
	if correo == "" || in.Password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "usuario y contraseña son requeridos"}
	}

	u, err := s.UsuarioRepo.GetByCorreo(ctx, correo)
	if errors.Is(err, sql.ErrNoRows) {
		return LoginResult{}, domain.ValidationError{Msg: "credenciales inválidas"}
	}
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}

	// El tipo declarado en el login debe coincidir con el registrado.
	if !strings.EqualFold(u.Tipo, strings.TrimSpace(in.UserType)) {
		return LoginResult{}, domain.ValidationError{Msg: "credenciales inválidas"}
	}
	if u.Estado != models.EstadoActivo {
		return LoginResult{}, domain.ValidationError{Msg: "usuario inactivo"}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return LoginResult{}, domain.ValidationError{Msg: "credenciales inválidas"}
	}

	token, err := s.signToken(u)
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}

	if err := s.UsuarioRepo.TouchUltimoAcceso(ctx, u.ID); err != nil {
		utils.LogEvent(s.RequestID, "auth", "touch_acceso", "no se pudo actualizar ultimo_acceso: "+err.Error())
	}

	u.Password = ""
	utils.LogEvent(s.RequestID, "auth", "login", "usuario_id="+formatID(u.ID))
	return LoginResult{Token: token, Usuario: u}, nil
}

func (s AuthService) signToken(u models.Usuario) (string, error) {
	ttl := s.JWTTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"id":      u.ID,
		"tipo":    u.Tipo,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

// ParseToken valida un token emitido por Login y devuelve el principal.
func (s AuthService) ParseToken(raw string) (domain.Principal, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return []byte(s.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, domain.ValidationError{Msg: "token inválido o expirado", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, domain.ValidationError{Msg: "token inválido o expirado"}
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		id, ok = claims["id"].(float64)
	}
	tipo, _ := claims["tipo"].(string)
	if !ok || id <= 0 || tipo == "" {
		return domain.Principal{}, domain.ValidationError{Msg: "token inválido o expirado"}
	}
	return domain.Principal{ID: int64(id), Tipo: tipo}, nil
}
