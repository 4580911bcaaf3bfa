//go:build windows

package windows

import "strings"

// UIA control type identifiers.
const (
	ctButton      = 50000
	ctCalendar    = 50001
	ctCheckBox    = 50002
	ctComboBox    = 50003
	ctEdit        = 50004
	ctHyperlink   = 50005
	ctImage       = 50006
	ctListItem    = 50007
	ctList        = 50008
	ctMenu        = 50009
	ctMenuBar     = 50010
	ctMenuItem    = 50011
	ctProgressBar = 50012
	ctRadioButton = 50013
	ctScrollBar   = 50014
	ctSlider      = 50015
	ctSpinner     = 50016
	ctStatusBar   = 50017
	ctTab         = 50018
	ctTabItem     = 50019
	ctText        = 50020
	ctToolBar     = 50021
	ctToolTip     = 50022
	ctTree        = 50023
	ctTreeItem    = 50024
	ctCustom      = 50025
	ctGroup       = 50026
	ctThumb       = 50027
	ctDataGrid    = 50028
	ctDataItem    = 50029
	ctDocument    = 50030
	ctSplitButton = 50031
	ctWindow      = 50032
	ctPane        = 50033
	ctHeader      = 50034
	ctHeaderItem  = 50035
	ctTable       = 50036
	ctTitleBar    = 50037
	ctSeparator   = 50038
	ctAppBar      = 50040
)

// genericToControlTypes maps a generic role to the control types it covers.
// App windows are often Panes, so those roles fan out.
var genericToControlTypes = map[string][]int32{
	"app":         {ctPane, ctWindow},
	"application": {ctPane, ctWindow},
	"pane":        {ctPane},
	"window":      {ctWindow, ctPane},
	"dialog":      {ctWindow},
	"button":      {ctButton, ctSplitButton},
	"splitbutton": {ctSplitButton},
	"checkbox":    {ctCheckBox},
	"radio":       {ctRadioButton},
	"radiobutton": {ctRadioButton},
	"menu":        {ctMenu},
	"menubar":     {ctMenuBar},
	"menuitem":    {ctMenuItem},
	"text":        {ctText},
	"statictext":  {ctText},
	"edit":        {ctEdit},
	"textfield":   {ctEdit},
	"input":       {ctEdit},
	"textarea":    {ctEdit, ctDocument},
	"url":         {ctEdit},
	"urlfield":    {ctEdit},
	"document":    {ctDocument},
	"list":        {ctList},
	"listitem":    {ctListItem},
	"table":       {ctTable},
	"datagrid":    {ctDataGrid},
	"dataitem":    {ctDataItem},
	"tree":        {ctTree},
	"treeitem":    {ctTreeItem},
	"combobox":    {ctComboBox},
	"tab":         {ctTab},
	"tabitem":     {ctTabItem},
	"toolbar":     {ctToolBar},
	"appbar":      {ctAppBar},
	"link":        {ctHyperlink},
	"hyperlink":   {ctHyperlink},
	"image":       {ctImage},
	"slider":      {ctSlider},
	"spinner":     {ctSpinner},
	"scrollbar":   {ctScrollBar},
	"progressbar": {ctProgressBar},
	"statusbar":   {ctStatusBar},
	"tooltip":     {ctToolTip},
	"group":       {ctGroup},
	"thumb":       {ctThumb},
	"header":      {ctHeader},
	"headeritem":  {ctHeaderItem},
	"titlebar":    {ctTitleBar},
	"title":       {ctTitleBar},
	"separator":   {ctSeparator},
	"calendar":    {ctCalendar},
	"custom":      {ctCustom},
}

// controlTypeNames maps control type IDs back to generic role names.
var controlTypeNames = map[int32]string{
	ctButton:      "button",
	ctCalendar:    "calendar",
	ctCheckBox:    "checkbox",
	ctComboBox:    "combobox",
	ctEdit:        "edit",
	ctHyperlink:   "hyperlink",
	ctImage:       "image",
	ctListItem:    "listitem",
	ctList:        "list",
	ctMenu:        "menu",
	ctMenuBar:     "menubar",
	ctMenuItem:    "menuitem",
	ctProgressBar: "progressbar",
	ctRadioButton: "radiobutton",
	ctScrollBar:   "scrollbar",
	ctSlider:      "slider",
	ctSpinner:     "spinner",
	ctStatusBar:   "statusbar",
	ctTab:         "tab",
	ctTabItem:     "tabitem",
	ctText:        "text",
	ctToolBar:     "toolbar",
	ctToolTip:     "tooltip",
	ctTree:        "tree",
	ctTreeItem:    "treeitem",
	ctCustom:      "custom",
	ctGroup:       "group",
	ctThumb:       "thumb",
	ctDataGrid:    "datagrid",
	ctDataItem:    "dataitem",
	ctDocument:    "document",
	ctSplitButton: "splitbutton",
	ctWindow:      "window",
	ctPane:        "pane",
	ctHeader:      "header",
	ctHeaderItem:  "headeritem",
	ctTable:       "table",
	ctTitleBar:    "titlebar",
	ctSeparator:   "separator",
	ctAppBar:      "appbar",
}

// controlTypesFor returns the control types matched by a generic role.
// Unknown roles match Custom, which is how third-party frameworks expose
// their widgets.
func controlTypesFor(generic string) []int32 {
	if types, ok := genericToControlTypes[strings.ToLower(generic)]; ok {
		return types
	}
	return []int32{ctCustom}
}

func genericRoleName(controlType int32) string {
	if name, ok := controlTypeNames[controlType]; ok {
		return name
	}
	return "unknown"
}
