// Package dbsdk is the HTTP client and wire contract of the catalog
// database service.
//
// The JSON field names are the ones the catalog frontend consumes, so they
// stay in Portuguese (cliente_id, tipo_pedido, data_expiracao, ...). Both the
// database service handlers and its callers (gateway, authentication
// service, end-to-end tests) use these types.
//
// Typed calls return *Error for non-2xx responses. Forward relays a request
// verbatim and hands back the raw status and body for the gateway to map.
package dbsdk
