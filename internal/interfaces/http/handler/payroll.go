package handler

import (
	payrollapp "github.com/contable/backoffice/internal/application/payroll"
	"github.com/contable/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayrollHandler handles payroll-related API endpoints
type PayrollHandler struct {
	BaseHandler
	payrollService *payrollapp.Service
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(payrollService *payrollapp.Service) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// RegisterRoutes registers payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payroll := rg.Group("/payroll")
	{
		payroll.POST("/:period/run", h.Run)
		payroll.POST("/:period/centralize", h.Centralize)
		payroll.GET("/:period/payslips", h.ListPayslips)
		payroll.GET("/:period/payslips/:employee_id", h.GetPayslip)
	}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.ListEmployees)
		employees.POST("/import", h.ImportEmployees)
	}

	institutions := rg.Group("/institutions")
	{
		institutions.POST("", h.CreateInstitution)
		institutions.GET("", h.ListInstitutions)
	}
}

// Run computes and stores the period's payslips
func (h *PayrollHandler) Run(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM")
		return
	}
	result, err := h.payrollService.RunPayroll(c.Request.Context(), req.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Centralize posts the period's payroll summary voucher
func (h *PayrollHandler) Centralize(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM")
		return
	}
	voucher, err := h.payrollService.Centralize(c.Request.Context(), req.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, voucher)
}

// ListPayslips returns the period's stored payslips
func (h *PayrollHandler) ListPayslips(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM")
		return
	}
	payslips, err := h.payrollService.ListPayslips(c.Request.Context(), req.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payslips)
}

// GetPayslip returns one stored payslip
func (h *PayrollHandler) GetPayslip(c *gin.Context) {
	period := c.Param("period")
	employeeID, err := uuid.Parse(c.Param("employee_id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	payslip, err := h.payrollService.GetPayslip(c.Request.Context(), employeeID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payslip)
}

// CreateEmployee creates an employee record
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	var req payrollapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// ListEmployees returns all employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	employees, err := h.payrollService.ListEmployees(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// ImportEmployees imports a batch of parser-produced employee rows
func (h *PayrollHandler) ImportEmployees(c *gin.Context) {
	var rows []payrollapp.ImportEmployeeRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.Success(c, h.payrollService.ImportEmployees(c.Request.Context(), rows))
}

// CreateInstitution creates a pension fund or health provider record
func (h *PayrollHandler) CreateInstitution(c *gin.Context) {
	var req payrollapp.CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	institution, err := h.payrollService.CreateInstitution(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, institution)
}

// ListInstitutions returns all institutions
func (h *PayrollHandler) ListInstitutions(c *gin.Context) {
	institutions, err := h.payrollService.ListInstitutions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, institutions)
}
