package service

import "errors"

var (
	ErrEmailTaken         = errors.New("e-mail do usuário já cadastrado")
	ErrInvalidCredentials = errors.New("usuário não encontrado ou credenciais inválidas")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserInactive       = errors.New("usuário desativado")
	ErrTokenInvalid       = errors.New("acesso negado, verifique a validade do token")
	ErrTokenExpired       = errors.New("token expirado")
	ErrOrderNotFound      = errors.New("pedido não encontrado")
	ErrItemNotFound       = errors.New("item do pedido não encontrado")
	ErrOrderClosed        = errors.New("pedido FINALIZADO ou CANCELADO não pode ser modificado")
	ErrForbidden          = errors.New("você não tem autorização para realizar esta operação")
	ErrValidation         = errors.New("dados inválidos")
)
