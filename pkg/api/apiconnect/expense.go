package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "splitmonth.v1.ExpenseService"

const (
	ExpenseServiceAddExpenseProcedure             = "/splitmonth.v1.ExpenseService/AddExpense"
	ExpenseServiceListExpensesProcedure           = "/splitmonth.v1.ExpenseService/ListExpenses"
	ExpenseServiceListMonthsProcedure             = "/splitmonth.v1.ExpenseService/ListMonths"
	ExpenseServiceUpdateExpenseProcedure          = "/splitmonth.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure          = "/splitmonth.v1.ExpenseService/DeleteExpense"
	ExpenseServiceGetBalancesProcedure            = "/splitmonth.v1.ExpenseService/GetBalances"
	ExpenseServiceGetSettlementProcedure          = "/splitmonth.v1.ExpenseService/GetSettlement"
	ExpenseServiceUpdateSettlementStatusProcedure = "/splitmonth.v1.ExpenseService/UpdateSettlementStatus"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.ExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListMonths(context.Context, *connect.Request[api.ListMonthsRequest]) (*connect.Response[api.ListMonthsResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.ExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error)
	UpdateSettlementStatus(context.Context, *connect.Request[api.UpdateSettlementStatusRequest]) (*connect.Response[api.SettlementResponse], error)
}

// NewExpenseServiceHandler returns the path prefix and handler serving svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts)
	handle(mux, ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts)
	handle(mux, ExpenseServiceListMonthsProcedure, svc.ListMonths, opts)
	handle(mux, ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts)
	handle(mux, ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts)
	handle(mux, ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts)
	handle(mux, ExpenseServiceGetSettlementProcedure, svc.GetSettlement, opts)
	handle(mux, ExpenseServiceUpdateSettlementStatusProcedure, svc.UpdateSettlementStatus, opts)
	return "/" + ExpenseServiceName + "/", mux
}

// ExpenseServiceClient calls a remote ExpenseService.
type ExpenseServiceClient struct {
	addExpense             *connect.Client[api.AddExpenseRequest, api.ExpenseResponse]
	listExpenses           *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	listMonths             *connect.Client[api.ListMonthsRequest, api.ListMonthsResponse]
	updateExpense          *connect.Client[api.UpdateExpenseRequest, api.ExpenseResponse]
	deleteExpense          *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getBalances            *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getSettlement          *connect.Client[api.GetSettlementRequest, api.SettlementResponse]
	updateSettlementStatus *connect.Client[api.UpdateSettlementStatusRequest, api.SettlementResponse]
}

// NewExpenseServiceClient creates a client for the ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		addExpense:             newClient[api.AddExpenseRequest, api.ExpenseResponse](httpClient, baseURL, ExpenseServiceAddExpenseProcedure, opts),
		listExpenses:           newClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL, ExpenseServiceListExpensesProcedure, opts),
		listMonths:             newClient[api.ListMonthsRequest, api.ListMonthsResponse](httpClient, baseURL, ExpenseServiceListMonthsProcedure, opts),
		updateExpense:          newClient[api.UpdateExpenseRequest, api.ExpenseResponse](httpClient, baseURL, ExpenseServiceUpdateExpenseProcedure, opts),
		deleteExpense:          newClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL, ExpenseServiceDeleteExpenseProcedure, opts),
		getBalances:            newClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL, ExpenseServiceGetBalancesProcedure, opts),
		getSettlement:          newClient[api.GetSettlementRequest, api.SettlementResponse](httpClient, baseURL, ExpenseServiceGetSettlementProcedure, opts),
		updateSettlementStatus: newClient[api.UpdateSettlementStatusRequest, api.SettlementResponse](httpClient, baseURL, ExpenseServiceUpdateSettlementStatusProcedure, opts),
	}
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListMonths(ctx context.Context, req *connect.Request[api.ListMonthsRequest]) (*connect.Response[api.ListMonthsResponse], error) {
	return c.listMonths.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateSettlementStatus(ctx context.Context, req *connect.Request[api.UpdateSettlementStatusRequest]) (*connect.Response[api.SettlementResponse], error) {
	return c.updateSettlementStatus.CallUnary(ctx, req)
}
