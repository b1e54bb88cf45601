package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrUsernameTaken      ErrCode = "USERNAME_TAKEN"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrPlayerAccessOnly ErrCode = "PLAYER_ACCESS_ONLY"
	ErrAdminAccessOnly  ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Game-specific ─────────────────────────────────────────────────
	ErrModeInvalid            ErrCode = "MODE_INVALID"
	ErrSessionNotFound        ErrCode = "SESSION_NOT_FOUND"
	ErrSessionCompleted       ErrCode = "SESSION_COMPLETED"
	ErrInvalidTransition      ErrCode = "INVALID_TRANSITION"
	ErrRetryNotAllowed        ErrCode = "RETRY_NOT_ALLOWED"
	ErrNoContent              ErrCode = "NO_CONTENT_FOR_MODE"
	ErrChallengeUnavailable   ErrCode = "CHALLENGE_UNAVAILABLE"
	ErrChallengeAlreadyPlayed ErrCode = "CHALLENGE_ALREADY_PLAYED"

	// ─── Persistence ───────────────────────────────────────────────────
	ErrPersistenceUnavailable ErrCode = "PERSISTENCE_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email atau kata sandi salah."
	case ErrEmailTaken:
		return "Email sudah terdaftar."
	case ErrUsernameTaken:
		return "Username sudah digunakan."
	case ErrSessionInvalidated:
		return "Sesi Anda telah berakhir. Silakan login kembali."
	case ErrTokenRequired:
		return "Token autentikasi diperlukan."
	case ErrTokenInvalid:
		return "Token autentikasi tidak valid."
	case ErrTokenExpired:
		return "Token autentikasi telah kedaluwarsa."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Anda tidak memiliki izin untuk mengakses sumber daya ini."
	case ErrPermissionDenied:
		return "Izin ditolak."
	case ErrPlayerAccessOnly:
		return "Sumber daya ini terbatas untuk pemain."
	case ErrAdminAccessOnly:
		return "Sumber daya ini terbatas untuk administrator."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrConflict:
		return "Sumber daya sudah ada."
	case ErrDependencyExists:
		return "Data tidak dapat dihapus karena masih digunakan oleh data lain."

	// ─── Game-specific ─────────────────────────────────────────────────
	case ErrModeInvalid:
		return "Mode permainan tidak dikenal."
	case ErrSessionNotFound:
		return "Sesi permainan tidak ditemukan atau sudah berakhir."
	case ErrSessionCompleted:
		return "Sesi permainan ini sudah selesai."
	case ErrInvalidTransition:
		return "Aksi ini tidak valid pada fase permainan saat ini."
	case ErrRetryNotAllowed:
		return "Mode permainan ini tidak mendukung pengulangan."
	case ErrNoContent:
		return "Belum ada konten untuk mode permainan ini."
	case ErrChallengeUnavailable:
		return "Tantangan harian belum tersedia."
	case ErrChallengeAlreadyPlayed:
		return "Tantangan harian hari ini sudah diselesaikan."

	// ─── Persistence ───────────────────────────────────────────────────
	case ErrPersistenceUnavailable:
		return "Progres belum tersimpan ke server. Permainan tetap dapat dilanjutkan."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
