package config

// Starter returns the layout `portctl init` writes: one unit type with a
// console group and a host group.
func Starter() *Config {
	cfg := &Config{
		Settings: Settings{
			SettingSerialDevice:   StringSetting("/dev/ttyUSB0"),
			SettingSerialBaudrate: NumberSetting("115200"),
		},
		UnitTypes: map[string]*UnitType{
			LegacyUnitType: {
				Description: "Edit config.json or press g and a to add your own",
				ButtonGroups: []ButtonGroup{
					{
						Title:       "Console",
						Description: "Serial console and modem",
						GroupType:   GroupSerial,
						Buttons: []Button{
							{Text: "Open screen", Action: ActionOpenScreen},
							{Text: "Close screen", Action: ActionCloseScreen},
							{Text: "Ping modem", Action: ActionSendToSerial, Command: "AT"},
							{Text: "BIOS setup", Action: ActionSendBIOSKey, Key: "F2", Style: &Style{Bg: "navy", Fg: "white"}},
						},
					},
					{
						Title:     "Host",
						GroupType: GroupLocal,
						Buttons: []Button{
							{Text: "Device info", Action: ActionRunLocalCommand, Command: "ls -l {serial_device}"},
						},
					},
				},
			},
		},
	}
	cfg.normalize()
	return cfg
}
