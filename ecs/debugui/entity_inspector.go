//go:build !js

package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfall/ecs"
)

type entityRow struct {
	id         ecs.EntityId
	types      []reflect.Type
	typeLabels string
}

// EntityInspector lists live entities with a text filter and edits the
// fields of the selected entity's components in place.
type EntityInspector struct {
	selected   ecs.EntityId
	filterText string
	perPage    int
	page       int
	rows       []entityRow
}

func NewEntityInspector(perPage int) *EntityInspector {
	return &EntityInspector{perPage: max(perPage, 1)}
}

// Selected returns the currently inspected entity, zero if none.
func (ei *EntityInspector) Selected() ecs.EntityId {
	return ei.selected
}

func (ei *EntityInspector) collect(storage *ecs.Storage) {
	ei.rows = ei.rows[:0]
	filter := strings.ToLower(ei.filterText)

	for id := range storage.Entities() {
		types := storage.ComponentTypes(id)
		labels := make([]string, len(types))
		for i, t := range types {
			labels[i] = t.String()
		}
		row := entityRow{id: id, types: types, typeLabels: strings.Join(labels, ", ")}

		if filter != "" &&
			!strings.Contains(fmt.Sprintf("%d", id.Index()), filter) &&
			!strings.Contains(strings.ToLower(row.typeLabels), filter) {
			continue
		}
		ei.rows = append(ei.rows, row)
	}
}

func (ei *EntityInspector) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ei.collect(storage)

	imgui.InputTextWithHint("##search", "Filter by index or component...", &ei.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		ei.filterText = ""
	}

	pages := max((len(ei.rows)+ei.perPage-1)/ei.perPage, 1)
	ei.page = min(ei.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Gen")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := ei.page * ei.perPage
		end := min(start+ei.perPage, len(ei.rows))
		for _, row := range ei.rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.id.Index()), ei.selected == row.id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ei.selected = row.id
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.id.Generation()))
			imgui.TableNextColumn()
			imgui.Text(row.typeLabels)
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", ei.page+1, pages, len(ei.rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && ei.page > 0 {
		ei.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && ei.page < pages-1 {
		ei.page++
	}

	imgui.Separator()
	ei.renderSelected(storage)

	imgui.End()
}

func (ei *EntityInspector) renderSelected(storage *ecs.Storage) {
	if ei.selected.IsZero() {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(ei.selected) {
		imgui.Text(fmt.Sprintf("Entity %d was deleted", ei.selected.Index()))
		return
	}

	for _, compType := range storage.ComponentTypes(ei.selected) {
		component := storage.GetComponent(ei.selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// renderValue draws editors for an addressable value; edits write straight
// into component storage.
func renderValue(val reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		target := val
		if field.Index >= 0 {
			target = val.Field(field.Index)
		}
		renderField(field, target)
	}
}

func renderField(field FieldInfo, val reflect.Value) {
	label := "##" + field.Name

	switch field.Kind {
	case FieldInt:
		v := int32(val.Int())
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case FieldUint:
		v := int32(val.Uint())
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case FieldFloat:
		v := float32(val.Float())
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case FieldBool:
		v := val.Bool()
		if imgui.Checkbox(field.Name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case FieldString:
		v := val.String()
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case FieldFloatArray:
		imgui.Text(field.Name + ":")
		for i := 0; i < val.Len(); i++ {
			elem := val.Index(i)
			v := float32(elem.Float())
			imgui.SameLine()
			imgui.SetNextItemWidth(90)
			if imgui.InputFloat(fmt.Sprintf("%s%d", label, i), &v) && elem.CanSet() {
				elem.SetFloat(float64(v))
			}
		}

	case FieldStruct:
		if imgui.TreeNodeStr(field.Name) {
			renderValue(val)
			imgui.TreePop()
		}

	default:
		switch val.Kind() {
		case reflect.Slice, reflect.Map:
			imgui.Text(fmt.Sprintf("%s: [%d items]", field.Name, val.Len()))
		default:
			imgui.Text(fmt.Sprintf("%s: %v", field.Name, val))
		}
	}
}
