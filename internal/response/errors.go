package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrEmailNotAllowed    ErrCode = "EMAIL_NOT_ALLOWED"
	ErrUsernameTaken      ErrCode = "USERNAME_TAKEN"
	ErrGoogleAuthFailed   ErrCode = "GOOGLE_AUTH_FAILED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrMissingMeta    ErrCode = "MISSING_METADATA"
	ErrNoQuestions    ErrCode = "NO_QUESTIONS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrInvalidReference ErrCode = "INVALID_REFERENCE"

	// ─── Documents & AI ────────────────────────────────────────────────
	ErrFileRequired       ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile    ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge       ErrCode = "FILE_TOO_LARGE"
	ErrDocumentTooSparse  ErrCode = "DOCUMENT_TOO_SPARSE"
	ErrExtractionFailed   ErrCode = "EXTRACTION_FAILED"
	ErrZeroQuestions      ErrCode = "ZERO_QUESTIONS"
	ErrAIGenerationFailed ErrCode = "AI_GENERATION_FAILED"
	ErrAIEmptyResponse    ErrCode = "AI_EMPTY_RESPONSE"
	ErrSaveFailed         ErrCode = "SAVE_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrDailyLimitExceeded ErrCode = "DAILY_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid password"
	case ErrUserNotFound:
		return "User not found"
	case ErrEmailNotAllowed:
		return "Registration is restricted to @gmail.com addresses only."
	case ErrUsernameTaken:
		return "Username already exists or invalid data"
	case ErrGoogleAuthFailed:
		return "Google authentication failed"
	case ErrTokenRequired:
		return "Access denied. No token provided."
	case ErrTokenInvalid:
		return "Invalid token"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "Access denied. Admins only."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrMissingMeta:
		return "Missing metadata (className, subject, chapter, unit)"
	case ErrNoQuestions:
		return "No questions provided"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record is still referenced by other data."
	case ErrInvalidReference:
		return "A referenced record does not exist."

	// ─── Documents & AI ────────────────────────────────────────────────
	case ErrFileRequired:
		return "No file uploaded"
	case ErrUnsupportedFile:
		return "Unsupported file type. Use PDF, DOCX, or TXT."
	case ErrFileTooLarge:
		return "File exceeds the upload size limit."
	case ErrDocumentTooSparse:
		return "Document text is too short or empty. Use a text-based PDF/DOCX (not scanned images)."
	case ErrExtractionFailed:
		return "Failed to read text from the document."
	case ErrZeroQuestions:
		return "AI returned 0 questions. The document might not contain enough relevant text."
	case ErrAIGenerationFailed:
		return "AI failed to generate questions."
	case ErrAIEmptyResponse:
		return "AI returned an empty response. Please try being more specific with your instructions."
	case ErrSaveFailed:
		return "Failed to save questions"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrDailyLimitExceeded:
		return "Daily AI generation limit reached (15/day). Please try again tomorrow."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
