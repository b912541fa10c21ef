package controllers

import (
	"strings"

	"order-tracker/database"
	"order-tracker/middlewares"
	"order-tracker/models"
	"order-tracker/queries"
	"order-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

// OrderDTO is the add/edit form. Every field is optional free text.
type OrderDTO struct {
	InputNumber           string `form:"input_number" validate:"max=100"`
	SupplierShipper       string `form:"supplier_shipper" validate:"max=200"`
	PONumber              string `form:"po_number" validate:"max=100"`
	MaterialCode          string `form:"material_code" validate:"max=100"`
	BOMMaterialName       string `form:"bom_material_name" validate:"max=200"`
	MaterialSize          string `form:"material_size" validate:"max=200"`
	Quantity              string `form:"quantity" validate:"max=100"`
	Unit                  string `form:"unit" validate:"max=50"`
	MBLNumber             string `form:"mbl_number" validate:"max=100"`
	ContainerCount        string `form:"container_count" validate:"max=50"`
	ContainerNumber       string `form:"container_number" validate:"max=100"`
	HBLNumber             string `form:"hbl_number" validate:"max=100"`
	POL                   string `form:"pol" validate:"max=100"`
	ETD                   string `form:"etd" validate:"max=100"`
	POD                   string `form:"pod" validate:"max=100"`
	PODETA                string `form:"pod_eta" validate:"max=100"`
	EstimatedDeliveryDate string `form:"estimated_delivery_date" validate:"max=100"`
	Remark                string `form:"remark" validate:"max=500"`
}

// bindOrder parses and validates the form. A nil error with non-nil invalid means
// the caller should re-render the form.
func bindOrder(c *fiber.Ctx) (map[string]any, []string, error) {
	var in OrderDTO
	if err := c.BodyParser(&in); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizeDTO(&in)
	if err := middlewares.ValidateStruct(&in); err != nil {
		invalid := middlewares.InvalidFields(err)
		if invalid == nil {
			return nil, nil, err
		}
		return utils.UpdatesFromDTO(&in), invalid, nil
	}
	return utils.UpdatesFromDTO(&in), nil, nil
}

func orderFromUpdates(updates map[string]any) models.Order {
	var o models.Order
	for name, v := range updates {
		if s, ok := v.(string); ok {
			o.SetValue(name, s)
		}
	}
	return o
}

func renderOrderForm(c *fiber.Ctx, title, action string, order models.Order, invalid []string) error {
	if len(invalid) > 0 {
		if err := middlewares.AddFlash(c, middlewares.FlashError, "Invalid value for: %s", strings.Join(invalid, ", ")); err != nil {
			return err
		}
		c.Status(fiber.StatusUnprocessableEntity)
	}
	return render(c, "order_form", fiber.Map{
		"Title":  title,
		"Action": action,
		"Order":  order,
	})
}

// GET /add_order
func AddOrderPage(c *fiber.Ctx) error {
	return renderOrderForm(c, "Add order", "/add_order", models.Order{}, nil)
}

// POST /add_order
func AddOrder(c *fiber.Ctx) error {
	updates, invalid, err := bindOrder(c)
	if err != nil {
		return err
	}
	order := orderFromUpdates(updates)
	if invalid != nil {
		return renderOrderForm(c, "Add order", "/add_order", order, invalid)
	}

	if err := database.GetDB(c).Create(&order).Error; err != nil {
		return err
	}
	if err := middlewares.AddFlash(c, middlewares.FlashSuccess, "New order added successfully!"); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

func orderID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

// GET /edit_order/:id
func EditOrderPage(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	order, err := queries.FindOrder(c.UserContext(), database.GetDB(c), id)
	if err != nil {
		return err
	}
	return renderOrderForm(c, "Edit order", c.Path(), order, nil)
}

// POST /edit_order/:id
func EditOrder(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	db := database.GetDB(c)
	order, err := queries.FindOrder(c.UserContext(), db, id)
	if err != nil {
		return err
	}

	updates, invalid, err := bindOrder(c)
	if err != nil {
		return err
	}
	if invalid != nil {
		submitted := orderFromUpdates(updates)
		submitted.ID = order.ID
		return renderOrderForm(c, "Edit order", c.Path(), submitted, invalid)
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return err
	}
	if err := middlewares.AddFlash(c, middlewares.FlashSuccess, "Order updated successfully!"); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}
