package handler

const (
	errInternalServer   = "Erreur interne du serveur"
	errUnauthorized     = "Non autorisé"
	errInvalidBody      = "Corps de requête invalide"
	errNameRequired     = "Le nom est requis"
	errUserNotFound     = "Utilisateur introuvable"
	errTokenMissing     = "Token manquant"
	errTokenInvalid     = "Token invalide"
	errTokenExpired     = "Token expiré"
	errAccountNotFound  = "Aucun compte associé à cet email"
	errPasswordTooShort = "Le mot de passe doit contenir au moins 8 caractères"
	errBadCredentials   = "Email ou mot de passe incorrect"
	errAccountDisabled  = "Compte désactivé"
	errGoogleDisabled   = "Connexion Google non configurée"
)
