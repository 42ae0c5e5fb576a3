package domain

import "errors"

// User-facing messages. The service answers in French by default and so
// does the form.
const (
	MsgNoIngredients  = "Veuillez ajouter au moins un ingrédient"
	MsgConnection     = "Erreur de connexion au serveur"
	MsgRetrieval      = "Erreur lors de la récupération des recettes"
	MsgGenerateFailed = "Une erreur est survenue lors de la génération de la recette"
	MsgGenerated      = "Recette générée avec succès !"
)

// Sentinel errors used across layers.
var (
	ErrNoIngredients   = errors.New(MsgNoIngredients)
	ErrSubmitInFlight  = errors.New("a generation request is already in flight")
	ErrUnknownCuisine  = errors.New("unknown cuisine type")
	ErrUnknownLanguage = errors.New("unknown language")
)
