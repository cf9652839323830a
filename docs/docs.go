// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "User registration", "responses": {"201": {"description": "User successfully registered"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "User login", "responses": {"200": {"description": "Successfully authenticated"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/refresh": {"post": {"tags": ["Auth"], "summary": "Refresh tokens", "responses": {"200": {"description": "New token pair"}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Logout", "responses": {"200": {"description": "Cookies cleared"}}}},
        "/auth/me": {
            "get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User"}}},
            "put": {"tags": ["Auth"], "summary": "Update profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User"}}}
        },
        "/invoices": {
            "get": {"tags": ["Invoices"], "summary": "List invoices", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoices, newest first"}}},
            "post": {"tags": ["Invoices"], "summary": "Save invoice", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Invoice saved"}, "402": {"description": "Plan limit reached"}}}
        },
        "/invoices/calculate": {"post": {"tags": ["Invoices"], "summary": "Calculate totals", "responses": {"200": {"description": "Subtotal, tax and total"}}}},
        "/invoices/export.csv": {"get": {"tags": ["Invoices"], "summary": "Export invoices as CSV", "produces": ["text/csv"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "invoices.csv"}}}},
        "/invoices/preview.pdf": {"post": {"tags": ["Invoices"], "summary": "Download draft PDF", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "invoice-draft.pdf"}, "402": {"description": "Plan limit reached"}}}},
        "/invoices/{id}": {
            "get": {"tags": ["Invoices"], "summary": "Get invoice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Invoices"], "summary": "Update invoice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice"}}},
            "delete": {"tags": ["Invoices"], "summary": "Delete invoice", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/invoices/{id}/status": {"patch": {"tags": ["Invoices"], "summary": "Update invoice status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Status changed"}}}},
        "/invoices/{id}/pdf": {"get": {"tags": ["Invoices"], "summary": "Download invoice PDF", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "invoice-<number>.pdf"}, "402": {"description": "Plan limit reached"}}}},
        "/tier/plans": {"get": {"tags": ["Tier"], "summary": "List plans", "responses": {"200": {"description": "Plan catalog"}}}},
        "/tier": {"get": {"tags": ["Tier"], "summary": "Current plan and usage", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Plan status"}}}},
        "/tier/features/{feature}": {"get": {"tags": ["Tier"], "summary": "Pre-flight feature check", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Allowed flag"}}}},
        "/leads": {
            "get": {"tags": ["Leads"], "summary": "List leads", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Paginated leads"}}},
            "post": {"tags": ["Leads"], "summary": "Create lead", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Lead"}, "402": {"description": "Plan limit reached"}}}
        },
        "/tasks": {
            "get": {"tags": ["Tasks"], "summary": "List tasks", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Tasks"}}},
            "post": {"tags": ["Tasks"], "summary": "Create task", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Task"}}}
        },
        "/team": {
            "get": {"tags": ["Team"], "summary": "List team members", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Members"}}},
            "post": {"tags": ["Team"], "summary": "Add team member", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Member"}, "402": {"description": "Plan limit reached"}}}
        },
        "/payments": {
            "get": {"tags": ["Payments"], "summary": "List my payments", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Payments"}}},
            "post": {"tags": ["Payments"], "summary": "Purchase plan", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Pending payment"}}}
        },
        "/portfolio": {
            "get": {"tags": ["Portfolio"], "summary": "Get my portfolio", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Portfolio"}}},
            "put": {"tags": ["Portfolio"], "summary": "Save my portfolio", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Portfolio"}}}
        },
        "/public/portfolio/{slug}": {"get": {"tags": ["Portfolio"], "summary": "Public portfolio", "responses": {"200": {"description": "Portfolio"}, "404": {"description": "Not found"}}}},
        "/stats": {"get": {"tags": ["Stats"], "summary": "Dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Dashboard"}}}},
        "/admin/payments": {"get": {"tags": ["Admin"], "summary": "List all payments", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Payments"}}}},
        "/admin/payments/{id}": {"patch": {"tags": ["Admin"], "summary": "Review payment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Payment"}}}},
        "/admin/jobs": {"get": {"tags": ["Admin"], "summary": "List jobs", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Jobs"}}}},
        "/admin/jobs/{name}/run": {"post": {"tags": ["Admin"], "summary": "Run job", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Execution"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bizdesk API",
	Description:      "Invoices, CRM and plan management for small businesses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
