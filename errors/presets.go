package errors

import "google.golang.org/grpc/codes"

const (
	TitleValidation = "Erro de validação"
	TitleNotFound   = "Não encontrado"
	TitleInternal   = "Erro interno do servidor"
	TitleCanceled   = "Requisição cancelada"
	TitleTimeout    = "Tempo esgotado"

	MsgUnexpected = "Ocorreu um erro inesperado. Tente novamente mais tarde."
)

func InvalidArgument() ErrorResponse {
	return New(TitleValidation, "Dados inválidos", codes.InvalidArgument).WithReason("invalid_argument")
}
func NotFound() ErrorResponse {
	return New(TitleNotFound, "Recurso não encontrado", codes.NotFound).WithReason("not_found")
}
func Internal() ErrorResponse {
	return New(TitleInternal, MsgUnexpected, codes.Internal).WithReason("internal")
}
func Canceled() ErrorResponse {
	return New(TitleCanceled, "Requisição cancelada pelo cliente", codes.Canceled).WithReason("canceled")
}
func DeadlineExceeded() ErrorResponse {
	return New(TitleTimeout, "Tempo limite excedido", codes.DeadlineExceeded).WithReason("deadline_exceeded")
}

// BadRequest is a 400 carrying a business-rule message, e.g. a duplicate
// mobile number.
func BadRequest(reason, message string) ErrorResponse {
	return InvalidArgument().WithReason(reason).WithMessage(message)
}

func ValidationViolations(v []FieldViolation) ErrorResponse {
	return InvalidArgument().WithReason("validation_failed").WithViolations(v)
}
