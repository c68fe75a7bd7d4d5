package handler

import "github.com/osse101/RestoLoyalty_Go/internal/session"

// Request-level error messages. These never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid id parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// User-facing messages for service errors. The storefront shows these verbatim.
const (
	ErrMsgGenericServerError   = "Une erreur est survenue"
	ErrMsgUnauthorizedError    = session.ErrMsgAuthRequired
	ErrMsgSessionExpiredError  = session.ErrMsgSessionExpired
	ErrMsgUserNotFoundError    = "Utilisateur introuvable"
	ErrMsgQuestNotFoundError   = "Quête introuvable"
	ErrMsgItemNotFoundError    = "Article introuvable"
	ErrMsgQuestNotStartedError = "Quête non commencée"
	ErrMsgQuestNotCompletedErr = "Quête non terminée"
	ErrMsgAlreadyClaimedError  = "Récompense déjà réclamée"
	ErrMsgAlreadyOwnedError    = "Article déjà possédé"
	ErrMsgItemNotActiveError   = "Article indisponible"
	ErrMsgInsufficientFundsErr = "Jetons insuffisants"
	ErrMsgNegativeBalanceError = "Solde insuffisant"
	ErrMsgInvalidInputError    = "Requête invalide"
)

// Log messages
const (
	LogMsgRequestFailed  = "Request failed"
	LogMsgBusinessReject = "Request rejected"
)
