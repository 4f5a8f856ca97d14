// Package apiconnect wires the receiptsplitter.v1.ReceiptService to Connect
// handlers and clients using the JSON codec from package api.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receiptsplitter/pkg/api"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
const ReceiptServiceName = "receiptsplitter.v1.ReceiptService"

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	ReceiptServiceCreateReceiptProcedure    = "/receiptsplitter.v1.ReceiptService/CreateReceipt"
	ReceiptServiceGetReceiptProcedure       = "/receiptsplitter.v1.ReceiptService/GetReceipt"
	ReceiptServiceListReceiptsProcedure     = "/receiptsplitter.v1.ReceiptService/ListReceipts"
	ReceiptServiceUpdateReceiptProcedure    = "/receiptsplitter.v1.ReceiptService/UpdateReceipt"
	ReceiptServiceDeleteReceiptProcedure    = "/receiptsplitter.v1.ReceiptService/DeleteReceipt"
	ReceiptServiceAddPersonProcedure        = "/receiptsplitter.v1.ReceiptService/AddPerson"
	ReceiptServiceUpdatePersonProcedure     = "/receiptsplitter.v1.ReceiptService/UpdatePerson"
	ReceiptServiceRemovePersonProcedure     = "/receiptsplitter.v1.ReceiptService/RemovePerson"
	ReceiptServiceAddItemProcedure          = "/receiptsplitter.v1.ReceiptService/AddItem"
	ReceiptServiceUpdateItemProcedure       = "/receiptsplitter.v1.ReceiptService/UpdateItem"
	ReceiptServiceRemoveItemProcedure       = "/receiptsplitter.v1.ReceiptService/RemoveItem"
	ReceiptServiceToggleAssignmentProcedure = "/receiptsplitter.v1.ReceiptService/ToggleAssignment"
	ReceiptServiceComputeTotalsProcedure    = "/receiptsplitter.v1.ReceiptService/ComputeTotals"
	ReceiptServiceCalculateTotalsProcedure  = "/receiptsplitter.v1.ReceiptService/CalculateTotals"
)

// ReceiptServiceHandler is implemented by the server side of the service.
type ReceiptServiceHandler interface {
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.ReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	AddPerson(context.Context, *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error)
	UpdatePerson(context.Context, *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.ReceiptResponse], error)
	RemovePerson(context.Context, *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.ReceiptResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ReceiptResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.ReceiptResponse], error)
	ToggleAssignment(context.Context, *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error)
	ComputeTotals(context.Context, *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.TotalsResponse], error)
	CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.TotalsResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	routes := map[string]http.Handler{
		ReceiptServiceCreateReceiptProcedure:    connect.NewUnaryHandler(ReceiptServiceCreateReceiptProcedure, svc.CreateReceipt, opts...),
		ReceiptServiceGetReceiptProcedure:       connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...),
		ReceiptServiceListReceiptsProcedure:     connect.NewUnaryHandler(ReceiptServiceListReceiptsProcedure, svc.ListReceipts, opts...),
		ReceiptServiceUpdateReceiptProcedure:    connect.NewUnaryHandler(ReceiptServiceUpdateReceiptProcedure, svc.UpdateReceipt, opts...),
		ReceiptServiceDeleteReceiptProcedure:    connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...),
		ReceiptServiceAddPersonProcedure:        connect.NewUnaryHandler(ReceiptServiceAddPersonProcedure, svc.AddPerson, opts...),
		ReceiptServiceUpdatePersonProcedure:     connect.NewUnaryHandler(ReceiptServiceUpdatePersonProcedure, svc.UpdatePerson, opts...),
		ReceiptServiceRemovePersonProcedure:     connect.NewUnaryHandler(ReceiptServiceRemovePersonProcedure, svc.RemovePerson, opts...),
		ReceiptServiceAddItemProcedure:          connect.NewUnaryHandler(ReceiptServiceAddItemProcedure, svc.AddItem, opts...),
		ReceiptServiceUpdateItemProcedure:       connect.NewUnaryHandler(ReceiptServiceUpdateItemProcedure, svc.UpdateItem, opts...),
		ReceiptServiceRemoveItemProcedure:       connect.NewUnaryHandler(ReceiptServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		ReceiptServiceToggleAssignmentProcedure: connect.NewUnaryHandler(ReceiptServiceToggleAssignmentProcedure, svc.ToggleAssignment, opts...),
		ReceiptServiceComputeTotalsProcedure:    connect.NewUnaryHandler(ReceiptServiceComputeTotalsProcedure, svc.ComputeTotals, opts...),
		ReceiptServiceCalculateTotalsProcedure:  connect.NewUnaryHandler(ReceiptServiceCalculateTotalsProcedure, svc.CalculateTotals, opts...),
	}

	return "/" + ReceiptServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// ReceiptServiceClient is a client for the receiptsplitter.v1.ReceiptService service.
type ReceiptServiceClient struct {
	createReceipt    *connect.Client[api.CreateReceiptRequest, api.ReceiptResponse]
	getReceipt       *connect.Client[api.GetReceiptRequest, api.ReceiptResponse]
	listReceipts     *connect.Client[api.ListReceiptsRequest, api.ListReceiptsResponse]
	updateReceipt    *connect.Client[api.UpdateReceiptRequest, api.ReceiptResponse]
	deleteReceipt    *connect.Client[api.DeleteReceiptRequest, api.DeleteReceiptResponse]
	addPerson        *connect.Client[api.AddPersonRequest, api.AddPersonResponse]
	updatePerson     *connect.Client[api.UpdatePersonRequest, api.ReceiptResponse]
	removePerson     *connect.Client[api.RemovePersonRequest, api.ReceiptResponse]
	addItem          *connect.Client[api.AddItemRequest, api.AddItemResponse]
	updateItem       *connect.Client[api.UpdateItemRequest, api.ReceiptResponse]
	removeItem       *connect.Client[api.RemoveItemRequest, api.ReceiptResponse]
	toggleAssignment *connect.Client[api.ToggleAssignmentRequest, api.ToggleAssignmentResponse]
	computeTotals    *connect.Client[api.ComputeTotalsRequest, api.TotalsResponse]
	calculateTotals  *connect.Client[api.CalculateTotalsRequest, api.TotalsResponse]
}

// NewReceiptServiceClient constructs a client for the
// receiptsplitter.v1.ReceiptService service. The JSON codec is always used.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReceiptServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(opts, connect.WithCodec(api.Codec{}))

	return &ReceiptServiceClient{
		createReceipt:    connect.NewClient[api.CreateReceiptRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceCreateReceiptProcedure, opts...),
		getReceipt:       connect.NewClient[api.GetReceiptRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceGetReceiptProcedure, opts...),
		listReceipts:     connect.NewClient[api.ListReceiptsRequest, api.ListReceiptsResponse](httpClient, baseURL+ReceiptServiceListReceiptsProcedure, opts...),
		updateReceipt:    connect.NewClient[api.UpdateReceiptRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceUpdateReceiptProcedure, opts...),
		deleteReceipt:    connect.NewClient[api.DeleteReceiptRequest, api.DeleteReceiptResponse](httpClient, baseURL+ReceiptServiceDeleteReceiptProcedure, opts...),
		addPerson:        connect.NewClient[api.AddPersonRequest, api.AddPersonResponse](httpClient, baseURL+ReceiptServiceAddPersonProcedure, opts...),
		updatePerson:     connect.NewClient[api.UpdatePersonRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceUpdatePersonProcedure, opts...),
		removePerson:     connect.NewClient[api.RemovePersonRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceRemovePersonProcedure, opts...),
		addItem:          connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+ReceiptServiceAddItemProcedure, opts...),
		updateItem:       connect.NewClient[api.UpdateItemRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceUpdateItemProcedure, opts...),
		removeItem:       connect.NewClient[api.RemoveItemRequest, api.ReceiptResponse](httpClient, baseURL+ReceiptServiceRemoveItemProcedure, opts...),
		toggleAssignment: connect.NewClient[api.ToggleAssignmentRequest, api.ToggleAssignmentResponse](httpClient, baseURL+ReceiptServiceToggleAssignmentProcedure, opts...),
		computeTotals:    connect.NewClient[api.ComputeTotalsRequest, api.TotalsResponse](httpClient, baseURL+ReceiptServiceComputeTotalsProcedure, opts...),
		calculateTotals:  connect.NewClient[api.CalculateTotalsRequest, api.TotalsResponse](httpClient, baseURL+ReceiptServiceCalculateTotalsProcedure, opts...),
	}
}

// CreateReceipt calls receiptsplitter.v1.ReceiptService.CreateReceipt.
func (c *ReceiptServiceClient) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.createReceipt.CallUnary(ctx, req)
}

// GetReceipt calls receiptsplitter.v1.ReceiptService.GetReceipt.
func (c *ReceiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

// ListReceipts calls receiptsplitter.v1.ReceiptService.ListReceipts.
func (c *ReceiptServiceClient) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

// UpdateReceipt calls receiptsplitter.v1.ReceiptService.UpdateReceipt.
func (c *ReceiptServiceClient) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.updateReceipt.CallUnary(ctx, req)
}

// DeleteReceipt calls receiptsplitter.v1.ReceiptService.DeleteReceipt.
func (c *ReceiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}

// AddPerson calls receiptsplitter.v1.ReceiptService.AddPerson.
func (c *ReceiptServiceClient) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

// UpdatePerson calls receiptsplitter.v1.ReceiptService.UpdatePerson.
func (c *ReceiptServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.updatePerson.CallUnary(ctx, req)
}

// RemovePerson calls receiptsplitter.v1.ReceiptService.RemovePerson.
func (c *ReceiptServiceClient) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

// AddItem calls receiptsplitter.v1.ReceiptService.AddItem.
func (c *ReceiptServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

// UpdateItem calls receiptsplitter.v1.ReceiptService.UpdateItem.
func (c *ReceiptServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

// RemoveItem calls receiptsplitter.v1.ReceiptService.RemoveItem.
func (c *ReceiptServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

// ToggleAssignment calls receiptsplitter.v1.ReceiptService.ToggleAssignment.
func (c *ReceiptServiceClient) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error) {
	return c.toggleAssignment.CallUnary(ctx, req)
}

// ComputeTotals calls receiptsplitter.v1.ReceiptService.ComputeTotals.
func (c *ReceiptServiceClient) ComputeTotals(ctx context.Context, req *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.TotalsResponse], error) {
	return c.computeTotals.CallUnary(ctx, req)
}

// CalculateTotals calls receiptsplitter.v1.ReceiptService.CalculateTotals.
func (c *ReceiptServiceClient) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.TotalsResponse], error) {
	return c.calculateTotals.CallUnary(ctx, req)
}
