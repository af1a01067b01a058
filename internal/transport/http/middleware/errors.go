package middleware

const (
	errUnauthorized   = "Non autorisé"
	errForbidden      = "Accès refusé"
	errInternalServer = "Erreur interne du serveur"
)
