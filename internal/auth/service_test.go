package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/authz"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockAccountRepository struct {
	passwords     map[string]string // username -> password hash
	accountIDs    map[string]string // username -> account id
	returnError   bool
	errorToReturn error
}

func newMockAccountRepository() *mockAccountRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockAccountRepository{
		passwords: map[string]string{
			"ceo":     string(hashedPassword),
			"hr":      string(hashedPassword),
			"manager": string(hashedPassword),
		},
		accountIDs: map[string]string{
			"ceo":     "10",
			"hr":      "20",
			"manager": "30",
		},
	}
}

func (m *mockAccountRepository) GetPasswordForUsername(username string) (string, string, error) {
	if m.returnError {
		return "", "", m.errorToReturn
	}

	if hash, exists := m.passwords[username]; exists {
		return hash, m.accountIDs[username], nil
	}
	return "", "", errors.New("account not found")
}

func (m *mockAccountRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

type mockEmployeeDirectory struct {
	employees map[int64]*employee.Employee
}

func (m *mockEmployeeDirectory) GetByAccountID(accountID int64) (*employee.Employee, error) {
	if emp, exists := m.employees[accountID]; exists {
		return emp, nil
	}
	return nil, employee.ErrEmployeeNotFound
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockAccountRepository
		directory     *mockEmployeeDirectory
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret"
		refreshSecret string        = "test-refresh-secret"
		accessTTL     time.Duration = 15 * time.Minute
		refreshTTL    time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAccountRepository()
		directory = &mockEmployeeDirectory{
			employees: map[int64]*employee.Employee{
				10: {ID: 1, AccountID: 10, Username: "ceo", Role: authz.RoleCEO},
				20: {ID: 2, AccountID: 20, Username: "hr", Role: authz.RoleHR},
			},
		}
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen, directory, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				dto := LoginDTO{
					Username: "hr",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should embed the account id in the access token", func() {
				dto := LoginDTO{
					Username: "ceo",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.AccountID).To(gomega.Equal("10"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown username", func() {
				dto := LoginDTO{
					Username: "stranger",
					Password: "any_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for wrong password", func() {
				dto := LoginDTO{
					Username: "hr",
					Password: "wrong_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty username", func() {
				dto := LoginDTO{
					Username: "",
					Password: "password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("username is required"))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return validation error for empty password", func() {
				dto := LoginDTO{
					Username: "hr",
					Password: "",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
			})
		})

		ginkgo.Context("when repository returns error", func() {
			ginkgo.It("should return invalid credentials error", func() {
				mockRepo.setError(errors.New("database error"))
				dto := LoginDTO{
					Username: "hr",
					Password: "correct_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		var validRefreshToken string

		ginkgo.BeforeEach(func() {
			tokens, err := service.Authenticate(LoginDTO{Username: "hr", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			validRefreshToken = tokens.RefreshToken
		})

		ginkgo.Context("when refresh token is valid", func() {
			ginkgo.It("should return a fresh token pair for the same account", func() {
				newTokens, err := service.RefreshTokens(validRefreshToken)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(newTokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(newTokens.RefreshToken).ToNot(gomega.BeEmpty())

				claims, err := service.ValidateAccessToken(newTokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.AccountID).To(gomega.Equal("20"))
			})
		})

		ginkgo.Context("when refresh token is invalid", func() {
			ginkgo.It("should return error for malformed token", func() {
				tokens, err := service.RefreshTokens("invalid.token.format")

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for expired token", func() {
				expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, -1*time.Hour, -1*time.Hour)
				expiredToken, err := expiredGen.GenerateRefreshToken("20")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				tokens, err := service.RefreshTokens(expiredToken)

				gomega.Expect(err).To(gomega.Or(gomega.Equal(ErrTokenExpired), gomega.Equal(ErrInvalidToken)))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should return claims for a valid token", func() {
			tokens, err := service.Authenticate(LoginDTO{Username: "ceo", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.AccountID).To(gomega.Equal("10"))
			gomega.Expect(claims.ExpiresAt).ToNot(gomega.BeNil())
		})

		ginkgo.It("should return error for an empty token", func() {
			claims, err := service.ValidateAccessToken("")

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should return ErrTokenExpired for an expired token", func() {
			expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, -1*time.Hour, refreshTTL)
			expiredToken, err := expiredGen.GenerateAccessToken("10")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(expiredToken)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
			gomega.Expect(claims).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("GetActingEmployee", func() {
		ginkgo.It("should resolve the employee bound to the account", func() {
			emp, err := service.GetActingEmployee(20)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emp.Username).To(gomega.Equal("hr"))
			gomega.Expect(emp.Role).To(gomega.Equal(authz.RoleHR))
		})

		ginkgo.It("should fail for an account without an employee record", func() {
			emp, err := service.GetActingEmployee(999)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(emp).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should return a verifiable bcrypt hash", func() {
			hash, err := service.HashPassword("test_password_123")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.BeEmpty())
			gomega.Expect(hash).ToNot(gomega.Equal("test_password_123"))

			err = bcrypt.CompareHashAndPassword([]byte(hash), []byte("test_password_123"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should generate different hashes for the same password", func() {
			hash1, err1 := service.HashPassword("same_password")
			hash2, err2 := service.HashPassword("same_password")

			gomega.Expect(err1).ToNot(gomega.HaveOccurred())
			gomega.Expect(err2).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash1).ToNot(gomega.Equal(hash2))
		})
	})
})

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var (
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret-key"
		refreshSecret string        = "test-refresh-secret-key"
		accessTTL     time.Duration = 15 * time.Minute
		refreshTTL    time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
	})

	ginkgo.Describe("GenerateAccessToken", func() {
		ginkgo.It("should generate a token that validates with the access TTL", func() {
			token, err := tokenGen.GenerateAccessToken("123")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.AccountID).To(gomega.Equal("123"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(accessTTL), time.Minute))
		})
	})

	ginkgo.Describe("GenerateRefreshToken", func() {
		ginkgo.It("should generate a token that validates with the refresh TTL", func() {
			token, err := tokenGen.GenerateRefreshToken("456")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.AccountID).To(gomega.Equal("456"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(refreshTTL), time.Minute))
		})
	})

	ginkgo.Describe("ValidateToken", func() {
		ginkgo.It("should return error for a malformed token", func() {
			claims, err := tokenGen.ValidateToken("invalid.token.here")

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("other-access-secret", "other-refresh-secret", accessTTL, refreshTTL)
			token, err := otherGen.GenerateAccessToken("123")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})
	})
})

var _ = ginkgo.Describe("LoginDTO", func() {
	ginkgo.Describe("Validate", func() {
		ginkgo.It("should accept a complete payload", func() {
			dto := LoginDTO{Username: "hr", Password: "secure_password"}

			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})

		ginkgo.It("should reject an empty username", func() {
			dto := LoginDTO{Username: "", Password: "password"}

			err := dto.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.Equal("username is required"))
		})

		ginkgo.It("should reject an empty password", func() {
			dto := LoginDTO{Username: "hr", Password: ""}

			err := dto.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.Equal("password is required"))
		})
	})
})

var _ = ginkgo.Describe("RefreshTokenDTO", func() {
	ginkgo.Describe("Validate", func() {
		ginkgo.It("should accept a provided token", func() {
			dto := RefreshTokenDTO{RefreshToken: "valid.jwt.token"}

			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})

		ginkgo.It("should reject an empty token", func() {
			dto := RefreshTokenDTO{RefreshToken: ""}

			err := dto.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.Equal("refresh_token is required"))
		})
	})
})
