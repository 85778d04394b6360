package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
	"github.com/jmacedo/pca-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: registro e login.
type UseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register cria um usuário: hash de senha com bcrypt e persistência.
// Devolve ErrDuplicado se o email já estiver cadastrado.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Senha) < 8 {
		return nil, &domain.ValidacaoError{Campo: "email/senha", Motivo: "email obrigatório e senha com mínimo 8 caracteres"}
	}
	existente, _ := uc.userRepo.GetByEmail(email)
	if existente != nil {
		return nil, domain.ErrDuplicado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	perfil := in.Perfil
	if perfil == "" {
		perfil = "consulta"
	}
	nome := in.Nome
	if nome == "" {
		nome = email
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Nome:         nome,
		Email:        email,
		SenhaHash:    string(hash),
		Perfil:       perfil,
		Ativo:        true,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	if err := uc.userRepo.Create(u); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Perfil, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: u.ID, Nome: u.Nome, Perfil: u.Perfil}, nil
}

// Login verifica email/senha e emite o JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	u, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNaoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrNaoAutorizado
	}
	if !u.Ativo {
		return nil, domain.ErrAcessoNegado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Perfil, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: u.ID, Nome: u.Nome, Perfil: u.Perfil}, nil
}
