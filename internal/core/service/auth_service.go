package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	// Session lifetimes: members and admins get 7 days, public users 30.
	memberTokenTTL = 7 * 24 * time.Hour
	publicTokenTTL = 30 * 24 * time.Hour
)

// phonePattern is a shallow format check: digits, spaces, dashes, parens.
var phonePattern = regexp.MustCompile(`^[\d\s\-()]+$`)

// AuthService implements login, public registration, and session resolution
// over the three identity stores.
type AuthService struct {
	members   ports.MemberRepository
	admins    ports.AdminRepository
	public    ports.PublicUserRepository
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthService(
	members ports.MemberRepository,
	admins ports.AdminRepository,
	public ports.PublicUserRepository,
	jwtSecret string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		members:   members,
		admins:    admins,
		public:    public,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// LoginMember authenticates a member by email or voter record. Unknown
// identity, unset password, and hash mismatch all collapse into
// ErrInvalidCredentials so the response shape never distinguishes them.
func (s *AuthService) LoginMember(ctx context.Context, in ports.MemberLoginInput) (*ports.LoginResult, error) {
	if in.Password == "" || (in.Email == "" && in.VoterRegNum == "" && in.NCID == "") {
		return nil, domain.ErrInvalidCredentials
	}

	var (
		member *domain.Member
		err    error
	)
	switch {
	case in.Email != "":
		member, err = s.members.FindByEmail(ctx, in.Email)
	case in.VoterRegNum != "":
		member, err = s.members.FindByVoterRegNum(ctx, in.VoterRegNum)
	default:
		member, err = s.members.FindByNCID(ctx, in.NCID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !member.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.members.UpdateLastLogin(ctx, member.ID); err != nil {
		s.log.Warn().Err(err).Str("member_id", member.ID).Msg("failed to stamp last login")
	}

	role := member.Role
	if role == "" {
		role = domain.RoleMember
	}
	token, err := s.signToken(jwt.MapClaims{
		"id":    member.ID,
		"email": member.Email,
		"role":  role,
		"type":  domain.UserTypeMember,
		"exp":   time.Now().Add(memberTokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("member_id", member.ID).Msg("member login")
	return &ports.LoginResult{Token: token, Member: member}, nil
}

// LoginAdmin authenticates an active admin user by username.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to stamp last login")
	}

	token, err := s.signToken(jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"type":  domain.UserTypeAdmin,
		"exp":   time.Now().Add(memberTokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("admin login")
	return &ports.LoginResult{Token: token, Admin: admin}, nil
}

// RegisterPublic creates the lightweight public-tier identity. The phone
// number must not already exist as a public user or a member.
func (s *AuthService) RegisterPublic(ctx context.Context, in ports.RegisterPublicInput) (*ports.LoginResult, error) {
	if in.FullName == "" || in.PhoneNumber == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !phonePattern.MatchString(in.PhoneNumber) {
		return nil, domain.ErrInvalidCredentials
	}

	// A member registered with this phone blocks the public slot too.
	if _, err := s.members.FindByPhone(ctx, in.PhoneNumber); err == nil {
		return nil, domain.ErrPhoneExists
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.public.Create(ctx, &domain.PublicUser{
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		LastLogin:   now,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(jwt.MapClaims{
		"id":           user.ID,
		"type":         domain.UserTypePublic,
		"full_name":    user.FullName,
		"phone_number": user.PhoneNumber,
		"exp":          time.Now().Add(publicTokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("public_user_id", user.ID).Msg("public user registered")
	return &ports.LoginResult{Token: token, PublicUser: user}, nil
}

// CurrentUser resolves claims against the identity stores. A token whose id
// no longer exists is treated as unauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, claims ports.TokenClaims) (*ports.MeResult, error) {
	switch claims.Type {
	case domain.UserTypeAdmin:
		admin, err := s.admins.FindByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUnauthenticated
			}
			return nil, err
		}
		return &ports.MeResult{Claims: claims, Admin: admin}, nil

	case domain.UserTypePublic:
		user, err := s.public.FindByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUnauthenticated
			}
			return nil, err
		}
		return &ports.MeResult{Claims: claims, PublicUser: user}, nil

	case domain.UserTypeMember:
		member, err := s.members.FindByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, domain.ErrMemberNotFound) {
				return nil, domain.ErrUnauthenticated
			}
			return nil, err
		}
		return &ports.MeResult{Claims: claims, Member: member}, nil
	}

	return nil, domain.ErrUnauthenticated
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
