package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrSessionExpired     ErrCode = "SESSION_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrUsernameTaken     ErrCode = "USERNAME_TAKEN"
	ErrStudentIDTaken    ErrCode = "STUDENT_ID_TAKEN"
	ErrAlreadySubmitted  ErrCode = "ALREADY_SUBMITTED"
	ErrStudentIDRequired ErrCode = "STUDENT_ID_REQUIRED"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrExamNotFound     ErrCode = "EXAM_NOT_FOUND"
	ErrMalformedExam    ErrCode = "MALFORMED_EXAM"
	ErrMissingOptions   ErrCode = "MCQ_MISSING_OPTIONS"
	ErrMissingTestCases ErrCode = "CODING_MISSING_TEST_CASES"

	// ─── AI / Code Execution ───────────────────────────────────────────
	ErrGenerationFailed    ErrCode = "GENERATION_FAILED"
	ErrChatUnavailable     ErrCode = "CHAT_UNAVAILABLE"
	ErrUnsupportedLanguage ErrCode = "UNSUPPORTED_LANGUAGE"
	ErrExecutionFailed     ErrCode = "EXECUTION_FAILED"

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
		return "Invalid username or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."
	case ErrSessionExpired:
		return "Your session has expired. Please log in again."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrTeacherAccessOnly:
		return "This resource is restricted to teachers."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrUsernameTaken:
		return "Username already exists."
	case ErrStudentIDTaken:
		return "Student ID already exists."
	case ErrAlreadySubmitted:
		return "Exam already submitted."
	case ErrStudentIDRequired:
		return "Student ID is required for student accounts."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrExamNotFound:
		return "Exam not found."
	case ErrMalformedExam:
		return "Missing required exam fields or malformed question data."
	case ErrMissingOptions:
		return "Multiple-choice question is missing its options."
	case ErrMissingTestCases:
		return "Coding question is missing starter code or test cases."

	// ─── AI / Code Execution ───────────────────────────────────────────
	case ErrGenerationFailed:
		return "Failed to generate questions."
	case ErrChatUnavailable:
		return "AI service is currently unavailable. Please ensure the model backend is running."
	case ErrUnsupportedLanguage:
		return "Unsupported programming language."
	case ErrExecutionFailed:
		return "Code execution failed."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
