package handler

const (
	jsonKeyError    = "error"
	jsonKeyMessage  = "message"
	jsonKeyRedirect = "redirect"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidCredentials      = "invalid email or password"
	msgAccountInactive         = "account is inactive"
	msgPasswordProcessFail     = "failed to process password"
	msgCreateAccountFail       = "failed to create account"
	msgGenerateTokenFail       = "failed to generate token"
	msgEmailAlreadyExists      = "a studio with this email already exists"
	msgStudioNotFound          = "studio not found"
	msgClientNotFound          = "client not found"
	msgProjectNotFound         = "project not found"
	msgLoggedOut               = "logged out"
	msgMissingUploadFile       = "missing upload file"
	msgInvalidIndexPair        = "invalid source or destination index"

	clientListingPath  = "/studio/clients"
	projectListingFmt  = "/studio/clients/%s"
	galleryNotFoundMsg = "gallery not found"
)
