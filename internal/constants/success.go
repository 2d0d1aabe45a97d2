package constants

import "net/http"

// APISuccess represents a standardized API success response with code and HTTP status.
// Use these predefined success constants for consistent API responses across the application.
type APISuccess struct {
	Code   string
	Status int
}

var (
	SuccessLinkCreated = APISuccess{
		Code:   CodeLinkCreated,
		Status: http.StatusCreated,
	}
	SuccessQuotaFound = APISuccess{
		Code:   CodeQuotaFound,
		Status: http.StatusOK,
	}
	SuccessUserCreated = APISuccess{
		Code:   CodeUserCreated,
		Status: http.StatusCreated,
	}
	SuccessLoginOK = APISuccess{
		Code:   CodeLoginOK,
		Status: http.StatusOK,
	}
	SuccessPackageCreated = APISuccess{
		Code:   CodePackageCreated,
		Status: http.StatusCreated,
	}
	SuccessPackageUpdated = APISuccess{
		Code:   CodePackageUpdated,
		Status: http.StatusOK,
	}
	SuccessPackagesFound = APISuccess{
		Code:   CodePackagesFound,
		Status: http.StatusOK,
	}
)
