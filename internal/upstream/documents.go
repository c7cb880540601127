package upstream

// GraphQL documents sent to the ResQ platform API. The schema is owned by
// the platform; the livemap only consumes these two operations.

const locationsQuery = `
  query Map_RescueVehicleLocations {
    rescueVehicleLocations {
      rescueVehicleId
      longitude
      latitude
      rescueVehicle {
        plateNumber
        code
        rescueVehicleCategory {
          emergencyToVehicles {
            emergencyCategory {
              icon
            }
          }
        }
      }
      active
      address
      lastActive
    }
  }
`

const locationShareSubscription = `
  subscription Map_OnVehicleLocationShare {
    onVehicleLocationShare {
      rescueVehicleId
      longitude
      latitude
      rescueVehicle {
        plateNumber
        code
        rescueVehicleCategory {
          emergencyToVehicles {
            emergencyCategory { icon }
          }
        }
      }
      active
      address
      lastActive
    }
  }
`
