package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shops API",
        "description": "Stores, products and orders with opening hours evaluated across time zones.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Stores", "description": "Stores and their weekly opening hours"},
        {"name": "Products", "description": "Products and their availability windows"},
        {"name": "Orders", "description": "Orders scheduled inside product availability"},
        {"name": "Metrics", "description": "Runtime counters"}
    ],
    "parameters": {
        "id": {"name": "id", "in": "path", "required": true, "type": "string"},
        "timezone": {"name": "timezone", "in": "query", "type": "string", "description": "IANA zone of the caller. Falls back to the X-Timezone header."},
        "day": {"name": "day", "in": "query", "type": "string", "description": "Weekday name or three-letter abbreviation"},
        "time": {"name": "time", "in": "query", "type": "string", "description": "HH:mm"},
        "from": {"name": "from", "in": "query", "type": "string", "description": "HH:mm window start"},
        "to": {"name": "to", "in": "query", "type": "string", "description": "HH:mm window end, exclusive, 24:00 allowed"},
        "page": {"name": "page", "in": "query", "type": "integer", "default": 1},
        "limit": {"name": "limit", "in": "query", "type": "integer", "default": 10}
    },
    "paths": {
        "/stores": {
            "get": {
                "tags": ["Stores"],
                "summary": "List stores",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "address", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/timezone"},
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/time"},
                    {"$ref": "#/parameters/from"},
                    {"$ref": "#/parameters/to"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Stores"],
                "summary": "Register a store",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStoreRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slug taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stores/active": {
            "get": {
                "tags": ["Stores"],
                "summary": "Stores open now or at a wall-clock time today",
                "parameters": [
                    {"$ref": "#/parameters/timezone"},
                    {"$ref": "#/parameters/time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stores/{id}": {
            "get": {
                "tags": ["Stores"],
                "summary": "Get a store",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Stores"],
                "summary": "Update a store",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Stores"],
                "summary": "Delete a store and its products",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/stores/{id}/status": {
            "get": {
                "tags": ["Stores"],
                "summary": "Open or closed right now",
                "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/timezone"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stores/{id}/hours": {
            "get": {
                "tags": ["Stores"],
                "summary": "Opening hours in the store zone and the viewer zone",
                "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/timezone"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stores/{id}/hours/export": {
            "get": {
                "tags": ["Stores"],
                "summary": "Download the opening hours sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"$ref": "#/parameters/timezone"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "List products",
                "parameters": [
                    {"name": "store_id", "in": "query", "type": "string"},
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "price_from", "in": "query", "type": "number"},
                    {"name": "price_to", "in": "query", "type": "number"},
                    {"$ref": "#/parameters/timezone"},
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/time"},
                    {"$ref": "#/parameters/from"},
                    {"$ref": "#/parameters/to"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Products"],
                "summary": "Add a product to a store",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/products/active": {
            "get": {
                "tags": ["Products"],
                "summary": "Products available now or at a wall-clock time today",
                "parameters": [
                    {"name": "store_id", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/timezone"},
                    {"$ref": "#/parameters/time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get a product",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Products"],
                "summary": "Update a product",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Products"],
                "summary": "Delete a product",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/products/{id}/availability": {
            "get": {
                "tags": ["Products"],
                "summary": "Whether the product can be ordered right now",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stores/{id}/stats": {
            "get": {
                "tags": ["Stores"],
                "summary": "Product and order counts",
                "description": "Orders scheduled at or before now count as past, the rest as upcoming.",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/orders": {
            "get": {
                "tags": ["Orders"],
                "summary": "List orders",
                "parameters": [
                    {"name": "product_id", "in": "query", "type": "string"},
                    {"name": "is_accepted", "in": "query", "type": "boolean"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["PICKUP", "DELIVERY"]},
                    {"name": "address", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/timezone"},
                    {"name": "schedule_from", "in": "query", "type": "string", "description": "RFC 3339 instant or HH:mm on day in timezone"},
                    {"name": "schedule_to", "in": "query", "type": "string", "description": "Exclusive upper bound, same formats"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Orders"],
                "summary": "Schedule an order",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Outside availability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/orders/store/{storeId}": {
            "get": {
                "tags": ["Orders"],
                "summary": "List orders for a store",
                "parameters": [
                    {"name": "storeId", "in": "path", "required": true, "type": "string"},
                    {"name": "is_accepted", "in": "query", "type": "boolean"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["PICKUP", "DELIVERY"]},
                    {"name": "address", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/day"},
                    {"$ref": "#/parameters/timezone"},
                    {"name": "schedule_from", "in": "query", "type": "string", "description": "RFC 3339 instant or HH:mm on day in timezone"},
                    {"name": "schedule_to", "in": "query", "type": "string", "description": "Exclusive upper bound, same formats"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "tags": ["Orders"],
                "summary": "Get an order",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Orders"],
                "summary": "Update or accept an order",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Outside availability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Orders"],
                "summary": "Delete an order",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Request, cache and availability counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "UpdateOrderRequest": {
            "type": "object",
            "properties": {
                "schedule_at": {"type": "string", "format": "date-time"},
                "address": {"type": "string"},
                "is_accepted": {"type": "boolean"}
            }
        },
        "Interval": {
            "type": "object",
            "properties": {
                "from": {"type": "string", "example": "09:00"},
                "to": {"type": "string", "example": "17:00"}
            }
        },
        "WeeklySchedule": {
            "type": "object",
            "description": "Keyed by weekday name. Missing days are closed.",
            "additionalProperties": {"$ref": "#/definitions/Interval"}
        },
        "CreateStoreRequest": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "timezone": {"type": "string", "example": "America/New_York"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "operating_hours": {"$ref": "#/definitions/WeeklySchedule"}
            },
            "required": ["slug", "name", "address", "timezone"]
        },
        "UpdateStoreRequest": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "timezone": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "operating_hours": {"$ref": "#/definitions/WeeklySchedule"}
            }
        },
        "CreateProductRequest": {
            "type": "object",
            "properties": {
                "store_id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "availability": {"$ref": "#/definitions/WeeklySchedule"},
                "cache_ttl": {"type": "integer", "description": "Seconds; 0 disables caching"}
            },
            "required": ["store_id", "name"]
        },
        "UpdateProductRequest": {
            "type": "object",
            "properties": {
                "store_id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "availability": {"$ref": "#/definitions/WeeklySchedule"},
                "cache_ttl": {"type": "integer"}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "type": {"type": "string", "enum": ["PICKUP", "DELIVERY"]},
                "schedule_at": {"type": "string", "format": "date-time"},
                "address": {"type": "string"},
                "timezone": {"type": "string"}
            },
            "required": ["product_id", "type", "schedule_at", "timezone"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
